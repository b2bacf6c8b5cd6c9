package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// layer at startup.
type RepositoryProvider struct {
	JourneyRepo  JourneyRepositoryWithTx
	DriverRepo   DriverRepositoryFacade
	TruckRepo    TruckRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	UserRepo     UserRepositoryFacade
	SettingsRepo SettingsRepositoryFacade
}
