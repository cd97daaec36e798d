package usecase

import (
	"context"
	"fmt"
	"strings"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/utils"
)

const deepLinkBase = "https://www.flightradar24.com"

// ReportFormatter assembles the human-readable flight reports. Every field
// is resolved through the extraction combinators so a missing or malformed
// datum degrades that field alone and never blocks the rest of the report.
type ReportFormatter struct {
	provider    repository.FlightProvider
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
}

// NewReportFormatter creates a new report formatter. airlineRepo may be nil
// when no local airline reference data is configured.
func NewReportFormatter(provider repository.FlightProvider, airlineRepo repository.AirlineRepository, logger logger.Logger) *ReportFormatter {
	return &ReportFormatter{
		provider:    provider,
		airlineRepo: airlineRepo,
		logger:      logger,
	}
}

// FindAircraftData returns the entry whose registration matches, or nil.
// This is the second hop of the airline-code join: the feed keyed by airline
// ICAO carries instantaneous telemetry the detail record does not.
func FindAircraftData(registration string, aircraftData []*entity.Flight) *entity.Flight {
	for _, aircraft := range aircraftData {
		if registration == aircraft.Registration {
			return aircraft
		}
	}
	return nil
}

// Status derives the live status from instantaneous altitude.
func Status(found *entity.Flight) string {
	if found == nil {
		return utils.NotAvailable
	}
	if found.AltitudeFt > 100 {
		return "In Flight"
	}
	return "On Ground"
}

// secondaryLookup resolves the flights-by-airline feed entry matching the
// registration. Any failure collapses to nil; the dependent fields then
// degrade individually.
func (f *ReportFormatter) secondaryLookup(ctx context.Context, details entity.FlightDetails, registration string) *entity.Flight {
	icao, ok := details.String("airline.code.icao")
	if !ok {
		return nil
	}

	aircraftData, err := f.provider.GetFlights(ctx, repository.FlightQuery{AirlineICAO: icao})
	if err != nil {
		f.logger.Debug("Secondary aircraft lookup failed", "airline", icao, "error", err)
		return nil
	}

	return FindAircraftData(registration, aircraftData)
}

// airlineLine renders "Name (IATA/ICAO)", falling back to the local airline
// reference table for the name when the provider record lacks it.
func (f *ReportFormatter) airlineLine(ctx context.Context, details entity.FlightDetails) string {
	name, nameOK := details.String("airline.name")
	icao, icaoOK := details.String("airline.code.icao")
	iata := details.StringOr("airline.code.iata", utils.NotAvailable)

	if !nameOK && icaoOK && f.airlineRepo != nil {
		if airline, err := f.airlineRepo.GetByICAO(ctx, icao); err == nil {
			name = airline.Name
			nameOK = true
		}
	}

	if !nameOK && !icaoOK {
		return utils.NotAvailable
	}
	if !nameOK {
		name = utils.NotAvailable
	}
	if !icaoOK {
		icao = utils.NotAvailable
	}

	return fmt.Sprintf("%s (%s/%s)", name, iata, icao)
}

// timeLine renders one epoch timestamp from the detail record as UTC HH:MM.
func timeLine(details entity.FlightDetails, path string) string {
	epoch, ok := details.Int(path)
	if !ok {
		return utils.NotAvailable
	}
	return fmt.Sprintf("%s (UTC)", utils.FormatUTCClock(epoch))
}

// FormatFull produces the five-section report for one enriched flight.
// The report is always whole: absent data appears as N/A gaps, and only the
// deep link is omitted entirely when the flight id is unavailable.
func (f *ReportFormatter) FormatFull(ctx context.Context, details entity.FlightDetails, registration string, current *entity.Flight) string {
	var b strings.Builder

	found := f.secondaryLookup(ctx, details, registration)

	b.WriteString("<b>Flight Details:</b>\n")
	fmt.Fprintf(&b, "  Callsign: %s\n", details.StringOr("identification.callsign", utils.NotAvailable))
	fmt.Fprintf(&b, "  Flight number: %s\n", details.StringOr("identification.number.default", utils.NotAvailable))
	fmt.Fprintf(&b, "  Status: %s\n", Status(found))
	fmt.Fprintf(&b, "  Aircraft Model: %s\n", details.StringOr("aircraft.model.text", utils.NotAvailable))
	fmt.Fprintf(&b, "  Registration: %s\n", details.StringOr("aircraft.registration", utils.NotAvailable))
	fmt.Fprintf(&b, "  Airline: %s\n\n", f.airlineLine(ctx, details))

	b.WriteString("<b>Aircraft Details:</b>\n")
	if current != nil {
		fmt.Fprintf(&b, "  Flight level: %s\n", current.FlightLevel())
	} else {
		fmt.Fprintf(&b, "  Flight level: %s\n", utils.NotAvailable)
	}
	if found != nil {
		fmt.Fprintf(&b, "  Altitude: %d\n", found.AltitudeFt)
		fmt.Fprintf(&b, "  Ground Speed: %d\n", found.GroundSpeedKt)
		fmt.Fprintf(&b, "  Heading: %d\n", found.Heading)
	} else {
		fmt.Fprintf(&b, "  Altitude: %s\n", utils.NotAvailable)
		fmt.Fprintf(&b, "  Ground Speed: %s\n", utils.NotAvailable)
		fmt.Fprintf(&b, "  Heading: %s\n", utils.NotAvailable)
	}
	if current != nil {
		fmt.Fprintf(&b, "  Vertical speed: %d\n", current.VerticalSpeed())
		fmt.Fprintf(&b, "  Squawk: %s", squawkOr(current, utils.NotAvailable))
	} else {
		fmt.Fprintf(&b, "  Vertical speed: %s\n", utils.NotAvailable)
		fmt.Fprintf(&b, "  Squawk: %s", utils.NotAvailable)
	}

	b.WriteString("\n\n<b>Airports Details:</b>\n")
	fmt.Fprintf(&b, "  Origin Airport: %s\n", airportLine(details, "origin"))
	fmt.Fprintf(&b, "  Destination Airport: %s\n\n", airportLine(details, "destination"))

	b.WriteString("<b>Time Details:</b>\n")
	fmt.Fprintf(&b, "  Scheduled Departure: %s\n", timeLine(details, "time.scheduled.departure"))
	fmt.Fprintf(&b, "  Real Departure: %s\n", timeLine(details, "time.real.departure"))
	fmt.Fprintf(&b, "  Scheduled Arrival: %s\n", timeLine(details, "time.scheduled.arrival"))
	fmt.Fprintf(&b, "  Estimated Arrival: %s\n", timeLine(details, "time.estimated.arrival"))

	if id, ok := details.String("identification.id"); ok {
		fmt.Fprintf(&b, "\n%s/%s\n\n", deepLinkBase, id)
	}

	return b.String()
}

// FormatBrief produces the compact one-flight block used in the proximity
// listing: header, model, registration and the origin/destination pair.
func (f *ReportFormatter) FormatBrief(details entity.FlightDetails) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s (%s)</b>\n",
		details.StringOr("identification.callsign", utils.NotAvailable),
		details.StringOr("identification.number.default", utils.NotAvailable))
	fmt.Fprintf(&b, "   Aircraft Model: %s\n", details.StringOr("aircraft.model.text", utils.NotAvailable))
	fmt.Fprintf(&b, "   Registration: %s\n", details.StringOr("aircraft.registration", utils.NotAvailable))
	fmt.Fprintf(&b, "   %s — %s\n",
		details.StringOr("airport.origin.code.icao", utils.NotAvailable),
		details.StringOr("airport.destination.code.icao", utils.NotAvailable))

	return b.String()
}

// airportLine renders "Name (IATA/ICAO)" for the origin or destination.
func airportLine(details entity.FlightDetails, side string) string {
	name, nameOK := details.String("airport." + side + ".name")
	if !nameOK {
		return utils.NotAvailable
	}

	return fmt.Sprintf("%s (%s/%s)",
		name,
		details.StringOr("airport."+side+".code.iata", utils.NotAvailable),
		details.StringOr("airport."+side+".code.icao", utils.NotAvailable))
}

func squawkOr(current *entity.Flight, fallback string) string {
	if current.Squawk == "" {
		return fallback
	}
	return current.Squawk
}
