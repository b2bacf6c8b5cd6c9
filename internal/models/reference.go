package models

// Driver is the driver registry row.
type Driver struct {
	DriverID      string `db:"driver_id"`
	FullName      string `db:"full_name"`
	Phone         string `db:"phone"`
	Email         string `db:"email"`
	NationalID    string `db:"national_id"`
	LicenseNumber string `db:"license_number"`
	AuditFields
}

// TruckStatus is the persisted availability state of a truck.
type TruckStatus string

const (
	TruckActive      TruckStatus = "active"
	TruckMaintenance TruckStatus = "maintenance"
	TruckInactive    TruckStatus = "inactive"
)

// Truck is the truck registry row.
type Truck struct {
	TruckID     string      `db:"truck_id"`
	PlateNumber string      `db:"plate_number"`
	Make        string      `db:"make"`
	Model       string      `db:"model"`
	Year        int         `db:"year"`
	Capacity    int         `db:"capacity"`
	Status      TruckStatus `db:"status"`
	Notes       string      `db:"notes"`
	AuditFields
}

// Customer is the customer registry row.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	Country    string `db:"country"`
	Phone      string `db:"phone"`
	AuditFields
}
