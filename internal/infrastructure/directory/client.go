// Package directory queries the CMS "Hospital General Information" dataset
// and maps its rows onto entity.DirectoryHospital.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"nightingale/config"
	"nightingale/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultLocationLimit = 100
	DefaultNameLimit     = 10
	DefaultZipLimit      = 100

	nameScanLimit     = 1000
	stateFallbackSize = 500
	zipPrefixLength   = 3
	maxErrorBody      = 4 << 10
)

// ErrUpstreamUnavailable is returned for transport failures, non-2xx
// responses and while the circuit breaker is open.
var ErrUpstreamUnavailable = errors.New("hospital directory unavailable")

// UpstreamError carries the status and body of a rejected request.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("directory responded %d: %s", e.StatusCode, e.Body)
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstreamUnavailable
}

type condition struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Operator string `json:"operator"`
}

type queryRequest struct {
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
	Conditions []condition `json:"conditions,omitempty"`
}

type queryResponse struct {
	Results []facilityRow `json:"results"`
}

type facilityRow struct {
	FacilityID        string `json:"facility_id"`
	FacilityName      string `json:"facility_name"`
	Address           string `json:"address"`
	CityTown          string `json:"citytown"`
	State             string `json:"state"`
	ZipCode           string `json:"zip_code"`
	TelephoneNumber   string `json:"telephone_number"`
	HospitalType      string `json:"hospital_type"`
	HospitalOwnership string `json:"hospital_ownership"`
	OverallRating     string `json:"hospital_overall_rating"`
}

func (r facilityRow) toEntity() entity.DirectoryHospital {
	return entity.DirectoryHospital{
		CMSID:        r.FacilityID,
		Name:         r.FacilityName,
		Street:       r.Address,
		City:         r.CityTown,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Phone:        r.TelephoneNumber,
		HospitalType: r.HospitalType,
		Ownership:    r.HospitalOwnership,
		Rating:       r.OverallRating,
	}
}

type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        *logrus.Logger
}

func NewClient(cfg config.DirectoryConfig, log *logrus.Logger) *Client {
	endpoint := fmt.Sprintf("%s/provider-data/api/1/datastore/query/%s/0",
		strings.TrimRight(cfg.BaseURL, "/"), cfg.Dataset)

	minRequests := cfg.BreakerMinRequests
	failureRatio := cfg.BreakerFailureRatio
	settings := gobreaker.Settings{
		Name:        "cms-directory",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= failureRatio
		},
		IsSuccessful: func(err error) bool {
			var upstream *UpstreamError
			if errors.As(err, &upstream) {
				return upstream.StatusCode < http.StatusInternalServerError
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	}
	breakerState.WithLabelValues(settings.Name).Set(stateValue(gobreaker.StateClosed))

	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    gobreaker.NewCircuitBreaker[[]byte](settings),
		log:        log,
	}
}

// SearchByLocation returns facilities in the given city and/or state.
func (c *Client) SearchByLocation(ctx context.Context, city, state string, limit int) ([]entity.DirectoryHospital, error) {
	if limit <= 0 {
		limit = DefaultLocationLimit
	}

	var conditions []condition
	if city != "" {
		conditions = append(conditions, equals("citytown", strings.ToUpper(city)))
	}
	if state != "" {
		conditions = append(conditions, equals("state", strings.ToUpper(state)))
	}

	rows, err := c.query(ctx, "location", queryRequest{Limit: limit, Conditions: conditions})
	if err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// SearchByName returns up to limit facilities whose name contains name,
// case-insensitively. The remote LIKE narrows the scan and the local
// substring check decides the result.
func (c *Client) SearchByName(ctx context.Context, name string, limit int) ([]entity.DirectoryHospital, error) {
	if limit <= 0 {
		limit = DefaultNameLimit
	}
	needle := strings.ToUpper(strings.TrimSpace(name))
	if needle == "" {
		return []entity.DirectoryHospital{}, nil
	}

	rows, err := c.query(ctx, "name", queryRequest{
		Limit: nameScanLimit,
		Conditions: []condition{{
			Property: "facility_name",
			Value:    "%" + needle + "%",
			Operator: "LIKE",
		}},
	})
	if err != nil {
		return nil, err
	}

	out := make([]entity.DirectoryHospital, 0, limit)
	for _, row := range rows {
		if !strings.Contains(strings.ToUpper(row.FacilityName), needle) {
			continue
		}
		out = append(out, row.toEntity())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SearchByZipcode tries an exact zip match first. When that finds nothing
// and a state is known, facilities in the state sharing the first three zip
// digits are returned instead.
func (c *Client) SearchByZipcode(ctx context.Context, zip, state string, limit int) ([]entity.DirectoryHospital, error) {
	if limit <= 0 {
		limit = DefaultZipLimit
	}

	rows, err := c.query(ctx, "zip", queryRequest{
		Limit:      limit,
		Conditions: []condition{equals("zip_code", zip)},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 || len(zip) < zipPrefixLength || state == "" {
		return toEntities(rows), nil
	}

	c.log.Debugf("No exact match for zip %s, falling back to prefix search in %s", zip, state)

	rows, err = c.query(ctx, "zip_prefix", queryRequest{
		Limit:      stateFallbackSize,
		Conditions: []condition{equals("state", strings.ToUpper(state))},
	})
	if err != nil {
		return nil, err
	}

	prefix := zip[:zipPrefixLength]
	out := make([]entity.DirectoryHospital, 0)
	for _, row := range rows {
		if !strings.HasPrefix(row.ZipCode, prefix) {
			continue
		}
		out = append(out, row.toEntity())
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// SearchByFacilityID returns nil, nil when the facility does not exist.
func (c *Client) SearchByFacilityID(ctx context.Context, facilityID string) (*entity.DirectoryHospital, error) {
	rows, err := c.query(ctx, "facility", queryRequest{
		Limit:      1,
		Conditions: []condition{equals("facility_id", facilityID)},
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	hospital := rows[0].toEntity()
	return &hospital, nil
}

func (c *Client) query(ctx context.Context, operation string, q queryRequest) ([]facilityRow, error) {
	start := time.Now()

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.post(ctx, q)
	})
	requestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(operation, outcome(err)).Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	var resp queryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		requestsTotal.WithLabelValues(operation, "decode_error").Inc()
		return nil, fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	requestsTotal.WithLabelValues(operation, "ok").Inc()

	return resp.Results, nil
}

func (c *Client) post(ctx context.Context, q queryRequest) ([]byte, error) {
	payload, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.log.Warnf("Directory API responded %d: %s", resp.StatusCode, snippet)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUpstreamUnavailable, err)
	}
	return body, nil
}

func equals(property, value string) condition {
	return condition{Property: property, Value: value, Operator: "="}
}

func toEntities(rows []facilityRow) []entity.DirectoryHospital {
	out := make([]entity.DirectoryHospital, len(rows))
	for i, row := range rows {
		out[i] = row.toEntity()
	}
	return out
}
