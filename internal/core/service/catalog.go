package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/parulcreation/projectshop/internal/core/domain"
	"go.uber.org/zap"
)

func (s *Service) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	list, err := s.repo.ListSubjects(ctx)
	if err != nil {
		s.logger.Error("List subjects", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	return s.repo.ReadSubject(ctx, id)
}

func (s *Service) CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	subject.ID = uuid.New()
	subject.CreatedAt = time.Now()

	newSubject, err := s.repo.CreateSubject(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create subject", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return newSubject, nil
}

func (s *Service) UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	return s.repo.UpdateSubject(ctx, subject)
}

func (s *Service) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSubject(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context, subjectID uuid.UUID) ([]*domain.Project, error) {
	list, err := s.repo.ListProjects(ctx, subjectID)
	if err != nil {
		s.logger.Error("List projects", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return s.repo.ReadProject(ctx, id)
}

func projectFileName(id uuid.UUID, originalName string) string {
	ext := filepath.Ext(originalName)
	if ext == "" {
		ext = ".pdf"
	}
	return id.String() + ext
}

func (s *Service) CreateProject(ctx context.Context, project *domain.Project,
	file io.Reader, originalName string) (*domain.Project, error) {
	if _, err := s.repo.ReadSubject(ctx, project.SubjectID); err != nil {
		return nil, err
	}

	project.ID = uuid.New()
	project.CreatedAt = time.Now()
	project.FileName = projectFileName(project.ID, originalName)

	if err := s.files.Save(project.FileName, file); err != nil {
		s.logger.Error("Save project file", zap.Error(err))
		return nil, domain.ErrInternal
	}

	newProject, err := s.repo.CreateProject(ctx, project)
	if err != nil {
		if removeErr := s.files.Remove(project.FileName); removeErr != nil {
			s.logger.Error("Remove orphaned project file", zap.Error(removeErr))
		}
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Create project", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return newProject, nil
}

func (s *Service) UpdateProject(ctx context.Context, project *domain.Project,
	file io.Reader, originalName string) (*domain.Project, error) {
	existing, err := s.repo.ReadProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	project.FileName = existing.FileName
	if file != nil {
		if existing.FileName != "" {
			if err := s.files.Remove(existing.FileName); err != nil {
				s.logger.Error("Remove old project file", zap.Error(err))
			}
		}
		project.FileName = projectFileName(project.ID, originalName)
		if err := s.files.Save(project.FileName, file); err != nil {
			s.logger.Error("Save project file", zap.Error(err))
			return nil, domain.ErrInternal
		}
	}

	updated, err := s.repo.UpdateProject(ctx, project)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, err
		}
		s.logger.Error("Update project", zap.Error(err))
		return nil, fmt.Errorf("update project: %w", domain.ErrInternal)
	}
	return updated, nil
}

func (s *Service) DeleteProject(ctx context.Context, id uuid.UUID) error {
	project, err := s.repo.ReadProject(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Remove(project.FileName); err != nil {
		s.logger.Error("Remove project file", zap.Error(err))
	}

	return s.repo.DeleteProject(ctx, id)
}
