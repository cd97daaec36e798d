package telegram

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"flightcast-service/internal/domain/entity"
	"flightcast-service/internal/domain/repository"
	"flightcast-service/internal/usecase"
	"flightcast-service/pkg/logger"
)

const (
	searchingReply   = "Flight number received. Searching..."
	processingReply  = "Geolocation received. Processing flight data..."
	notFoundReply    = "Flight information not found."
	providerDownMsg  = "Flight data is temporarily unavailable. Try again later."
	photoCaptionTmpl = "Aircraft Photo: %s"
	mapCaption       = "Flight Path Map"
	graphCaption     = "Flight Graph"
)

// Bot is the Telegram transport. Each update runs its own pipeline with a
// per-request result value; nothing is shared between concurrent updates.
type Bot struct {
	bot           *tele.Bot
	lookup        *usecase.FlightLookup
	scanner       *usecase.ProximityScanner
	formatter     *usecase.ReportFormatter
	visualizer    *usecase.Visualizer
	mapRenderer   repository.MapRenderer
	graphRenderer repository.GraphRenderer
	artifactDir   string
	scanRadiusM   float64
	logger        logger.Logger

	baseCtx context.Context
}

// NewBot creates the Telegram bot with a long poller.
func NewBot(
	token string,
	pollTimeout time.Duration,
	lookup *usecase.FlightLookup,
	scanner *usecase.ProximityScanner,
	formatter *usecase.ReportFormatter,
	visualizer *usecase.Visualizer,
	mapRenderer repository.MapRenderer,
	graphRenderer repository.GraphRenderer,
	artifactDir string,
	scanRadiusM float64,
	logger logger.Logger,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: pollTimeout},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:           b,
		lookup:        lookup,
		scanner:       scanner,
		formatter:     formatter,
		visualizer:    visualizer,
		mapRenderer:   mapRenderer,
		graphRenderer: graphRenderer,
		artifactDir:   artifactDir,
		scanRadiusM:   scanRadiusM,
		logger:        logger,
	}

	b.Handle(tele.OnText, bot.handleText)
	b.Handle(tele.OnLocation, bot.handleLocation)

	return bot, nil
}

// Start begins long polling and blocks until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	b.baseCtx = ctx

	go func() {
		<-ctx.Done()
		b.bot.Stop()
	}()

	b.logger.Info("Telegram bot polling")
	b.bot.Start()
}

// handleText treats any text message as a flight identifier lookup.
func (b *Bot) handleText(c tele.Context) error {
	identifier := strings.TrimSpace(c.Message().Text)
	if identifier == "" {
		return nil
	}

	b.logger.Info("Lookup request", "identifier", identifier, "chat", c.Chat().ID)

	progress, err := b.bot.Reply(c.Message(), searchingReply)
	if err != nil {
		return err
	}
	defer b.deleteQuietly(progress)

	enriched, err := b.lookup.Lookup(b.baseCtx, identifier)
	if err != nil {
		return c.Send(b.userMessage(err))
	}

	return b.sendFlightInformation(c, enriched)
}

// handleLocation runs a proximity scan around the shared location.
func (b *Bot) handleLocation(c tele.Context) error {
	location := c.Message().Location
	point := entity.NewPoint(float64(location.Lat), float64(location.Lng))

	b.logger.Info("Scan request", "lat", point.Latitude, "lon", point.Longitude, "chat", c.Chat().ID)

	progress, err := b.bot.Reply(c.Message(), processingReply)
	if err != nil {
		return err
	}
	defer b.deleteQuietly(progress)

	results, err := b.scanner.Scan(b.baseCtx, point, b.scanRadiusM)
	if err != nil {
		return c.Send(b.userMessage(err))
	}

	var report strings.Builder
	fmt.Fprintf(&report, "<b>Aircrafts near you (%.0f km):</b>\n\n", b.scanRadiusM/1000)
	for i, result := range results {
		fmt.Fprintf(&report, "%d) %s   Distance from you: %d m\n\n",
			i+1,
			b.formatter.FormatBrief(result.Flight.Details()),
			result.DistanceMeters)
	}

	return c.Send(report.String(), &tele.SendOptions{ParseMode: tele.ModeHTML})
}

// sendFlightInformation delivers the media album (photo, map, graph) and
// the full report for one enriched flight. Rendering failures drop the
// affected artifact, not the report.
func (b *Bot) sendFlightInformation(c tele.Context, enriched *usecase.EnrichedFlight) error {
	details := enriched.Details()
	report := b.formatter.FormatFull(b.baseCtx, details, enriched.Registration, enriched.Flight)

	album := tele.Album{}

	if photoURL, ok := details.String("aircraft.images.medium.0.link"); ok {
		album = append(album, &tele.Photo{
			File:    tele.FromURL(photoURL),
			Caption: fmt.Sprintf(photoCaptionTmpl, enriched.Registration),
		})
	}

	if mapPath, err := b.renderMap(details, enriched); err != nil {
		b.logger.Warn("Map rendering failed", "registration", enriched.Registration, "error", err)
	} else {
		album = append(album, &tele.Photo{File: tele.FromDisk(mapPath), Caption: mapCaption})
	}

	if graphPath, err := b.renderGraph(details, enriched); err != nil {
		b.logger.Warn("Graph rendering failed", "registration", enriched.Registration, "error", err)
	} else {
		album = append(album, &tele.Photo{File: tele.FromDisk(graphPath), Caption: graphCaption})
	}

	if len(album) > 0 {
		if err := c.SendAlbum(album); err != nil {
			b.logger.Error("Failed to send media album", "error", err)
		}
	}

	return c.Send(report, &tele.SendOptions{ParseMode: tele.ModeHTML})
}

func (b *Bot) renderMap(details entity.FlightDetails, enriched *usecase.EnrichedFlight) (string, error) {
	spec, err := b.visualizer.BuildMap(b.baseCtx, details, enriched.Flight)
	if err != nil {
		return "", err
	}

	path := filepath.Join(b.artifactDir, fmt.Sprintf("flight_map_%s.png", enriched.Registration))
	if err := b.mapRenderer.RenderMap(b.baseCtx, spec, path); err != nil {
		return "", err
	}

	return path, nil
}

func (b *Bot) renderGraph(details entity.FlightDetails, enriched *usecase.EnrichedFlight) (string, error) {
	spec, err := b.visualizer.BuildGraph(details)
	if err != nil {
		return "", err
	}

	path := filepath.Join(b.artifactDir, fmt.Sprintf("graph_%s.png", enriched.Registration))
	if err := b.graphRenderer.RenderGraph(b.baseCtx, spec, path); err != nil {
		return "", err
	}

	return path, nil
}

// userMessage maps pipeline errors to the single user-visible outcome.
func (b *Bot) userMessage(err error) string {
	switch {
	case errors.Is(err, entity.ErrFlightNotFound), errors.Is(err, entity.ErrNoTrackedInstances):
		return notFoundReply
	case entity.IsProviderError(err):
		b.logger.Error("Provider fault", "error", err)
		return providerDownMsg
	default:
		b.logger.Error("Unexpected pipeline error", "error", err)
		return providerDownMsg
	}
}

func (b *Bot) deleteQuietly(msg *tele.Message) {
	if err := b.bot.Delete(msg); err != nil {
		b.logger.Debug("Failed to delete progress message", "error", err)
	}
}
