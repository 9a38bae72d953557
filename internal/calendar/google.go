package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClient создаёт календари и события через Google Calendar API
type GoogleClient struct {
	svc    *gcal.Service
	loc    *time.Location
	logger *zap.Logger
}

// NewGoogleClient читает OAuth client secret и сохранённый токен.
// Получение токена в браузере здесь не делается: token.json должен уже существовать.
func NewGoogleClient(ctx context.Context, credentialsFile, tokenFile string, loc *time.Location, logger *zap.Logger) (*GoogleClient, error) {
	secret, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	cfg, err := google.ConfigFromJSON(secret, gcal.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	tok, err := readToken(tokenFile)
	if err != nil {
		return nil, err
	}

	svc, err := gcal.NewService(ctx, option.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return NewGoogleClientWithService(svc, loc, logger), nil
}

func NewGoogleClientWithService(svc *gcal.Service, loc *time.Location, logger *zap.Logger) *GoogleClient {
	return &GoogleClient{svc: svc, loc: loc, logger: logger}
}

func readToken(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open token: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

// Location часовой пояс создаваемых событий
func (c *GoogleClient) Location() *time.Location {
	return c.loc
}

// GetOrCreateCalendar ищет календарь по названию, создаёт при отсутствии
func (c *GoogleClient) GetOrCreateCalendar(ctx context.Context, name string) (string, error) {
	pageToken := ""
	for {
		call := c.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		list, err := call.Do()
		if err != nil {
			return "", fmt.Errorf("list calendars: %w", err)
		}
		for _, item := range list.Items {
			if item.Summary == name {
				return item.Id, nil
			}
		}
		if list.NextPageToken == "" {
			break
		}
		pageToken = list.NextPageToken
	}

	created, err := c.svc.Calendars.Insert(&gcal.Calendar{
		Summary:  name,
		TimeZone: c.loc.String(),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create calendar: %w", err)
	}

	c.logger.Info("Created calendar", zap.String("calendar", name), zap.String("calendar_id", created.Id))
	return created.Id, nil
}

// InsertEvent добавляет событие в календарь
func (c *GoogleClient) InsertEvent(ctx context.Context, calendarID string, ev *gcal.Event) (*gcal.Event, error) {
	created, err := c.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return created, nil
}
