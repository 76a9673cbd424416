package machines

import "time"

type Category string

const (
	CatImpression   Category = "impression"
	CatGravure      Category = "gravure"
	CatDecoupe      Category = "decoupe"
	CatElectronique Category = "electronique"
	CatOther        Category = "other"
)

type Status string

const (
	StatusOperational Status = "operational"
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusBroken      Status = "broken"
	StatusOccupied    Status = "occupied"
)

// Machine is a bookable FabLab machine. HourlyRate is in FCFA.
type Machine struct {
	ID               string
	Name             string
	Category         Category
	HourlyRate       float64
	Status           Status
	RequiresTraining bool
	Features         []string // ordered
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Bookable reports whether the machine may appear in the booking flow.
// Only operational and available machines are selectable.
func (m Machine) Bookable() bool {
	return m.Status == StatusOperational || m.Status == StatusAvailable
}
