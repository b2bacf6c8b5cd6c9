package domain

// Driver is a truck driver that journeys reference by ID.
type Driver struct {
	DriverID      string `json:"driverID"`
	FullName      string `json:"fullName"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	NationalID    string `json:"nationalID"`
	LicenseNumber string `json:"licenseNumber"`
	AuditFields
}

// TruckStatus indicates whether a truck is available for journeys.
type TruckStatus string

const (
	TruckActive      TruckStatus = "active"
	TruckMaintenance TruckStatus = "maintenance"
	TruckInactive    TruckStatus = "inactive"
)

// Truck is a vehicle in the fleet.
type Truck struct {
	TruckID     string      `json:"truckID"`
	PlateNumber string      `json:"plateNumber"`
	Make        string      `json:"make"`
	Model       string      `json:"model"`
	Year        int         `json:"year"`
	Capacity    int         `json:"capacity"`
	Status      TruckStatus `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	AuditFields
}

// Customer is the party paying for a journey.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	AuditFields
}

// User is a back-office account that creates and manages journeys.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}
