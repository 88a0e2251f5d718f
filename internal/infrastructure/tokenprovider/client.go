package tokenprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cateringworks/lunchbot/internal/core/domain"
	"github.com/cateringworks/lunchbot/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Client talks to the user-token service for one named sign-in connection.
// It implements ports.TokenProvider; the coordinator holds one Client per
// flow and never sees HTTP.
type Client struct {
	http       *http.Client
	baseURL    string
	connection string
	appID      string
	appSecret  string
	log        zerolog.Logger
}

func New(baseURL, connection, appID, appSecret string, log zerolog.Logger) *Client {
	return &Client{
		http:       &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		connection: connection,
		appID:      appID,
		appSecret:  appSecret,
		log:        log.With().Str("connection", connection).Logger(),
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type signInResponse struct {
	SignInLink string `json:"signInLink"`
}

// Begin starts the exchange: if the token service already holds a token for
// the user it is returned immediately, otherwise the caller gets a
// loginRequest envelope pointing at the sign-in link.
func (c *Client) Begin(ctx context.Context, scope ports.Scope) (*ports.ExchangeResult, error) {
	return c.exchange(ctx, scope)
}

// Complete finishes an exchange after the platform delivered the
// continuation invoke. If the user abandoned sign-in the token is still
// missing and the client is asked to sign in again.
func (c *Client) Complete(ctx context.Context, scope ports.Scope) (*ports.ExchangeResult, error) {
	return c.exchange(ctx, scope)
}

func (c *Client) exchange(ctx context.Context, scope ports.Scope) (*ports.ExchangeResult, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/usertoken/GetToken", scope)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		var tok tokenResponse
		if err := json.Unmarshal(body, &tok); err != nil {
			return nil, fmt.Errorf("decode token response: %w", err)
		}
		return &ports.ExchangeResult{Token: tok.Token}, nil

	case http.StatusNotFound:
		link, err := c.signInLink(ctx, scope)
		if err != nil {
			return nil, err
		}
		return &ports.ExchangeResult{Response: domain.LoginRequestResponse(link)}, nil

	default:
		return nil, fmt.Errorf("token service returned %d", status)
	}
}

// SignOut revokes the user's token for this connection.
func (c *Client) SignOut(ctx context.Context, scope ports.Scope) (*domain.InvokeResponse, error) {
	status, _, err := c.do(ctx, http.MethodDelete, "/api/usertoken/SignOut", scope)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return nil, fmt.Errorf("token service returned %d", status)
	}
	c.log.Info().Str("user_id", scope.UserID).Msg("user signed out")
	return domain.MessageResponse(fmt.Sprintf("You have been signed out of %s.", c.connection)), nil
}

func (c *Client) signInLink(ctx context.Context, scope ports.Scope) (string, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/api/botsignin/GetSignInUrl", scope)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("token service returned %d", status)
	}
	var link signInResponse
	if err := json.Unmarshal(body, &link); err != nil {
		return "", fmt.Errorf("decode sign-in response: %w", err)
	}
	return link.SignInLink, nil
}

func (c *Client) do(ctx context.Context, method, path string, scope ports.Scope) (int, []byte, error) {
	q := url.Values{}
	q.Set("userId", scope.UserID)
	q.Set("connectionName", c.connection)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}

	auth, err := c.serviceToken()
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+auth)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("token service request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readAll(resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

// serviceToken mints a short-lived credential proving this bot's identity to
// the token service.
func (c *Client) serviceToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.appID,
		"aud": c.baseURL,
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.appSecret))
	if err != nil {
		return "", fmt.Errorf("sign service token: %w", err)
	}
	return signed, nil
}
