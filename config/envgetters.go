package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

func GetPort() int {
	if port := os.Getenv("PORT"); port != "" {
		return cast.ToInt(port)
	}
	return AppConfig.GetInt("port")
}

// GetTokenSecret returns the HS256 signing secret for bearer tokens.
func GetTokenSecret() []byte {
	return []byte(os.Getenv("AUTH_SECRET"))
}

// GetTokenTTL returns the bearer token lifetime, 24h unless overridden.
func GetTokenTTL() time.Duration {
	if ttl := os.Getenv("AUTH_TOKEN_TTL"); ttl != "" {
		if d := cast.ToDuration(ttl); d > 0 {
			return d
		}
	}
	return 24 * time.Hour
}

func GetGoogleClientID() string {
	return os.Getenv("GOOGLE_CLIENT_ID")
}

func GetGoogleClientSecret() string {
	return os.Getenv("GOOGLE_CLIENT_SECRET")
}

func GetGoogleRedirectURL() string {
	return os.Getenv("GOOGLE_REDIRECT_URL")
}

// GetFrontendURL is the base URL the OAuth callback redirects back to.
func GetFrontendURL() string {
	if url := os.Getenv("FRONTEND_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

// GetStripeKey returns the Stripe API key, empty when payments run against
// the local fallback gateway.
func GetStripeKey() string {
	return os.Getenv("STRIPE_KEY")
}

func GetSessionSecret() []byte {
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("secret")
}
