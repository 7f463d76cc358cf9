package repository

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/parulcreation/projectshop/internal/core/domain"
)

func (r *Repository) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	statement := r.db.QueryBuilder.
		Select("s.id", "s.name", "s.description", "s.icon", "count(p.id)", "s.created_at").
		From("subjects s").
		LeftJoin("projects p ON p.subject_id = s.id").
		GroupBy("s.id").
		OrderBy("s.name")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Subject, 0)
	for rows.Next() {
		subject := domain.Subject{}
		err := rows.Scan(
			&subject.ID,
			&subject.Name,
			&subject.Description,
			&subject.Icon,
			&subject.ProjectCount,
			&subject.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		list = append(list, &subject)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) ReadSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	statement := r.db.QueryBuilder.
		Select("s.id", "s.name", "s.description", "s.icon", "count(p.id)", "s.created_at").
		From("subjects s").
		LeftJoin("projects p ON p.subject_id = s.id").
		Where(sq.Eq{"s.id": id}).
		GroupBy("s.id")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	subject := domain.Subject{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Description,
		&subject.Icon,
		&subject.ProjectCount,
		&subject.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return &subject, nil
}

func (r *Repository) CreateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	statement := r.db.QueryBuilder.Insert("subjects").
		Columns("id", "name", "description", "icon", "created_at").
		Values(subject.ID, subject.Name, subject.Description, subject.Icon, subject.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	return subject, nil
}

func (r *Repository) UpdateSubject(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	statement := r.db.QueryBuilder.Update("subjects").
		Set("name", subject.Name).
		Set("description", subject.Description).
		Set("icon", subject.Icon).
		Where(sq.Eq{"id": subject.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}
	return subject, nil
}

func (r *Repository) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	statement := r.db.QueryBuilder.Delete("subjects").Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrConflictingData
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}

var projectColumns = []string{
	"p.id", "p.subject_id", "s.name", "p.title", "p.description",
	"p.price", "p.file_name", "p.created_at",
}

func (r *Repository) projectSelect() sq.SelectBuilder {
	return r.db.QueryBuilder.
		Select(projectColumns...).
		From("projects p").
		Join("subjects s ON s.id = p.subject_id")
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	project := domain.Project{}
	err := row.Scan(
		&project.ID,
		&project.SubjectID,
		&project.SubjectName,
		&project.Title,
		&project.Description,
		&project.Price,
		&project.FileName,
		&project.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *Repository) ListProjects(ctx context.Context, subjectID uuid.UUID) ([]*domain.Project, error) {
	statement := r.projectSelect().OrderBy("p.created_at DESC")
	if subjectID != uuid.Nil {
		statement = statement.Where(sq.Eq{"p.subject_id": subjectID})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, project)
	}

	err = rows.Err()
	if err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repository) ReadProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	statement := r.projectSelect().Where(sq.Eq{"p.id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	return scanProject(r.db.QueryRow(ctx, sql, args...))
}

func (r *Repository) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	statement := r.db.QueryBuilder.Insert("projects").
		Columns("id", "subject_id", "title", "description", "price", "file_name", "created_at").
		Values(project.ID, project.SubjectID, project.Title, project.Description,
			project.Price, project.FileName, project.CreatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}
	return project, nil
}

func (r *Repository) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	statement := r.db.QueryBuilder.Update("projects").
		Set("subject_id", project.SubjectID).
		Set("title", project.Title).
		Set("description", project.Description).
		Set("price", project.Price).
		Set("file_name", project.FileName).
		Where(sq.Eq{"id": project.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}
	return project, nil
}

func (r *Repository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	statement := r.db.QueryBuilder.Delete("projects").Where(sq.Eq{"id": id})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}
	return nil
}
