package services

// ServiceContainer holds instances of all the application services.
type ServiceContainer struct {
	Journey  JourneySvcFacade
	Report   ReportSvcFacade
	Driver   DriverSvcFacade
	Truck    TruckSvcFacade
	Customer CustomerSvcFacade
	User     UserSvcFacade
	Settings SettingsSvcFacade
}
