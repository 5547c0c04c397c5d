// Package facebook wraps the one Graph API call the platform needs: resolving
// a leadgen id from a webhook notification into the submitted form fields.
package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// LeadData is the normalized form submission behind one leadgen id.
type LeadData struct {
	LeadgenID string
	FullName  string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// GraphClient fetches lead details for leadgen ids.
type GraphClient interface {
	FetchLead(ctx context.Context, leadgenID string) (*LeadData, error)
}

// GraphError is a failure reported by the Graph API; the upstream message is
// passed through to the caller.
type GraphError struct {
	StatusCode int
	Message    string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("facebook graph api: %s (status %d)", e.Message, e.StatusCode)
}

const defaultGraphURL = "https://graph.facebook.com/v18.0"

// httpGraphClient implements GraphClient over plain HTTP.
type httpGraphClient struct {
	baseURL     string
	accessToken string
	client      *http.Client
}

// NewGraphClient creates a Graph API client. baseURL may be empty to use the
// production endpoint; tests point it at a local server.
func NewGraphClient(baseURL, accessToken string) GraphClient {
	if baseURL == "" {
		baseURL = defaultGraphURL
	}
	return &httpGraphClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// graphLeadResponse mirrors the Graph API leadgen payload.
type graphLeadResponse struct {
	ID          string `json:"id"`
	CreatedTime string `json:"created_time"`
	FieldData   []struct {
		Name   string   `json:"name"`
		Values []string `json:"values"`
	} `json:"field_data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FetchLead resolves a leadgen id into the submitted form fields.
func (c *httpGraphClient) FetchLead(ctx context.Context, leadgenID string) (*LeadData, error) {
	endpoint := fmt.Sprintf("%s/%s?access_token=%s", c.baseURL, url.PathEscape(leadgenID), url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &GraphError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed graphLeadResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &GraphError{StatusCode: resp.StatusCode, Message: "unparseable response"}
	}
	if parsed.Error != nil {
		return nil, &GraphError{StatusCode: resp.StatusCode, Message: parsed.Error.Message}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &GraphError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	lead := &LeadData{LeadgenID: parsed.ID}
	if t, err := time.Parse(time.RFC3339, parsed.CreatedTime); err == nil {
		lead.CreatedAt = t
	}
	for _, field := range parsed.FieldData {
		if len(field.Values) == 0 {
			continue
		}
		value := field.Values[0]
		switch field.Name {
		case "full_name":
			lead.FullName = value
		case "email":
			lead.Email = value
		case "phone_number":
			lead.Phone = value
		}
	}
	return lead, nil
}
