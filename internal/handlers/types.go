package handlers

import (
	"net/http"
	"time"
)

// URLBody is the JSON representation of a short URL.
type URLBody struct {
	Slug      string     `doc:"The short slug"       example:"abc123"              json:"slug"`
	ShortURL  string     `doc:"The full short URL"   example:"http://localhost:8888/abc123" json:"shortUrl"`
	LongURL   string     `doc:"The target URL"       example:"https://example.com" json:"longUrl"`
	Title     string     `doc:"Optional title"       json:"title,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Disabled  bool       `json:"disabled"`
}

// CreateURLRequest is the request for creating a short URL.
type CreateURLRequest struct {
	Body struct {
		LongURL    string     `doc:"The URL to shorten" example:"https://example.com/very/long/path" format:"uri" json:"longUrl"`
		Title      string     `doc:"Optional title"     json:"title,omitempty"`
		CustomSlug string     `doc:"Optional custom slug" json:"customSlug,omitempty"`
		ExpiresAt  *time.Time `doc:"Optional expiry"    json:"expiresAt,omitempty"`
	}
}

// CreateURLResponse is the response for a successfully created short URL.
type CreateURLResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body URLBody
}

// ListURLsResponse lists the caller's URLs, newest first.
type ListURLsResponse struct {
	Body []URLBody
}

// URLRequest addresses one short URL by slug.
type URLRequest struct {
	Slug string `doc:"The short slug" example:"abc123" path:"slug"`
}

// URLResponse returns one short URL.
type URLResponse struct {
	Body URLBody
}

// UpdateURLRequest mutates a URL's lifecycle fields. Omitted fields are
// left unchanged.
type UpdateURLRequest struct {
	Slug string `doc:"The short slug" path:"slug"`
	Body struct {
		Disabled  *bool      `doc:"Disable or re-enable the URL" json:"disabled,omitempty"`
		ExpiresAt *time.Time `doc:"New expiry"                   json:"expiresAt,omitempty"`
	}
}

// RedirectRequest is the request for redirecting a slug.
type RedirectRequest struct {
	Slug string `doc:"The short slug" example:"abc123" path:"slug"`
}

// RedirectResponse redirects the visitor to the target URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The target URL" header:"Location"`
	}
}

// AnalyticsRequest addresses one slug's analytics.
type AnalyticsRequest struct {
	Slug string `doc:"The short slug" example:"abc123" path:"slug"`
}

// SummaryResponse holds the headline counters for a slug.
type SummaryResponse struct {
	Body struct {
		TotalClicks    int64 `json:"totalClicks"`
		UniqueVisitors int64 `doc:"Distinct (IP, user-agent) pairs" json:"uniqueVisitors"`
	}
}

// TimeSeriesPoint is one day's visit count.
type TimeSeriesPoint struct {
	Date  string `doc:"UTC calendar day" example:"2025-06-01" json:"date"`
	Count int64  `json:"count"`
}

// TimeSeriesResponse is the per-day visit series, ascending and sparse.
type TimeSeriesResponse struct {
	Body []TimeSeriesPoint
}

// ReferrerCount is one referrer group. Referrer is null for visits
// without a referrer.
type ReferrerCount struct {
	Referrer *string `json:"referrer"`
	Count    int64   `json:"count"`
}

// ReferrersResponse is the top referrers, descending by count.
type ReferrersResponse struct {
	Body []ReferrerCount
}

// DeviceCount is one device type group.
type DeviceCount struct {
	DeviceType string `json:"deviceType"`
	Count      int64  `json:"count"`
}

// DevicesResponse groups visits by device type.
type DevicesResponse struct {
	Body []DeviceCount
}

// BrowserCount is one browser group. Browser is null when unknown.
type BrowserCount struct {
	Browser *string `json:"browser"`
	Count   int64   `json:"count"`
}

// BrowsersResponse groups visits by browser.
type BrowsersResponse struct {
	Body []BrowserCount
}

// OSCount is one operating system group. OS is null when unknown.
type OSCount struct {
	OS    *string `json:"os"`
	Count int64   `json:"count"`
}

// OSResponse groups visits by operating system.
type OSResponse struct {
	Body []OSCount
}

// UserBody is the JSON representation of an account.
type UserBody struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Verified bool   `json:"verified"`
}

// SignupRequest creates a new account.
type SignupRequest struct {
	Body struct {
		Email    string `format:"email" json:"email"`
		Username string `json:"username" minLength:"3"`
		Password string `json:"password" minLength:"6"`
	}
}

// SignupResponse returns the created account.
type SignupResponse struct {
	Body UserBody
}

// LoginRequest authenticates an account.
type LoginRequest struct {
	Body struct {
		Email    string `format:"email" json:"email"`
		Password string `json:"password"`
	}
}

// LoginResponse sets the session cookie and returns the account.
type LoginResponse struct {
	Headers struct {
		SetCookie http.Cookie `header:"Set-Cookie"`
	}
	Body UserBody
}

// LogoutResponse clears the session cookie.
type LogoutResponse struct {
	Headers struct {
		SetCookie http.Cookie `header:"Set-Cookie"`
	}
	Body struct {
		Message string `json:"message"`
	}
}

// MeResponse returns the authenticated account.
type MeResponse struct {
	Body UserBody
}

// VerifyEmailRequest confirms an address with the emailed token.
type VerifyEmailRequest struct {
	Token string `doc:"Verification token from the email link" query:"token" required:"true"`
}

// VerifyEmailResponse confirms the account can now log in.
type VerifyEmailResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Body struct {
		Email string `format:"email" json:"email"`
	}
}

// ForgotPasswordResponse acknowledges the request without revealing
// whether the email is registered.
type ForgotPasswordResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

// ResetPasswordRequest sets a new password using the emailed token.
type ResetPasswordRequest struct {
	Token string `doc:"Reset token from the email link" query:"token" required:"true"`
	Body  struct {
		Password string `json:"password" minLength:"6"`
	}
}

// ResetPasswordResponse confirms the password change.
type ResetPasswordResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}
