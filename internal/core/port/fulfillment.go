package port

//go:generate mockgen -source=fulfillment.go -destination=mock/fulfillment.go -package=mock
type FulfillmentDispatcher interface {
	Dispatch(reference string)
}

type Mailer interface {
	SendArtifact(to string, customerName string, projectTitle string, filePath string) error
}
