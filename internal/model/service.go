package model

type ServiceCategory string

const (
	ServiceCategoryMassage       ServiceCategory = "massage"
	ServiceCategoryFacial        ServiceCategory = "facial"
	ServiceCategoryBodyTreatment ServiceCategory = "body-treatment"
	ServiceCategoryTherapy       ServiceCategory = "therapy"
)

// Service is a catalog entry. Clients carry a snapshot of the service taken at
// intake, so catalog edits only affect future assignments.
type Service struct {
	Base
	Name       string          `db:"name" json:"name"`
	Category   ServiceCategory `db:"category" json:"category"`
	Duration   int             `db:"duration" json:"duration"` // in minutes
	Price      float64         `db:"price" json:"price"`
	Commission float64         `db:"commission" json:"commission"` // percentage
}

type CreateServiceRequest struct {
	Name       string  `json:"name" binding:"required"`
	Category   string  `json:"category" binding:"required,oneof=massage facial body-treatment therapy"`
	Duration   int     `json:"duration" binding:"required,gt=0"`
	Price      float64 `json:"price" binding:"gte=0"`
	Commission float64 `json:"commission" binding:"gte=0,lte=100"`
}

type UpdateServiceRequest struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category" binding:"omitempty,oneof=massage facial body-treatment therapy"`
	Duration   *int     `json:"duration" binding:"omitempty,gt=0"`
	Price      *float64 `json:"price" binding:"omitempty,gte=0"`
	Commission *float64 `json:"commission" binding:"omitempty,gte=0,lte=100"`
}
