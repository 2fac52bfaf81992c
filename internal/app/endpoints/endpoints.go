package endpoints

// Endpoints groups every endpoint exposed by the transport layer.
type Endpoints struct {
	FlightSearchEndpoint FlightSearchEndpoint
	FareCalendarEndpoint FareCalendarEndpoint
}

func MakeEndpoints(search FlightSearchService, fareRules FareRulesService,
	calendar FareCalendarService) Endpoints {
	return Endpoints{
		FlightSearchEndpoint: MakeFlightSearchEndpoint(search, fareRules),
		FareCalendarEndpoint: MakeFareCalendarEndpoint(calendar),
	}
}
