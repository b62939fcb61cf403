package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/supabase-community/postgrest-go"
)

// Client inserts rows through the Supabase PostgREST endpoint.
type Client struct {
	rest *postgrest.Client
}

var ErrMissingCredentials = errors.New("SUPABASE_URL and SUPABASE_SERVICE_KEY must both be set")

// New points a PostgREST client at {baseURL}/rest/v1, authenticated with the
// service role key.
func New(baseURL string, serviceKey string) (*Client, error) {
	if baseURL == "" || serviceKey == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid SUPABASE_URL: %w", err)
	}

	rest := postgrest.NewClient(strings.TrimRight(baseURL, "/")+"/rest/v1", "public", map[string]string{
		"apikey":        serviceKey,
		"Authorization": "Bearer " + serviceKey,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("invalid SUPABASE_URL: %w", rest.ClientError)
	}

	return &Client{rest: rest}, nil
}

// Insert appends row to table without asking for the stored row back.
func (c *Client) Insert(ctx context.Context, table string, row interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, _, err := c.rest.From(table).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("supabase insert into %s: %w", table, err)
	}
	return nil
}
