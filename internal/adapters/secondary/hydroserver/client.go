// Package hydroserver reads HydroServer (WDS) time series databases: the
// database registry, ReFTS catalogs and WaterML 1.1 values.
package hydroserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	log "github.com/sirupsen/logrus"

	"hydroshare-viewer-service/internal/core/domain"
	ports "hydroshare-viewer-service/internal/core/ports/output"
	"hydroshare-viewer-service/internal/proxy"
)

type client struct {
	baseURL string
	http    *proxy.Client
}

// NewHydroServerClient creates a HydroServer adapter rooted at baseURL
// (for example https://host/wds).
func NewHydroServerClient(baseURL string, httpClient *proxy.Client) ports.HydroServerClient {
	return &client{baseURL: baseURL, http: httpClient}
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

type databaseJSON struct {
	DatabaseID   flexString `json:"database_id"`
	DatabaseName flexString `json:"database_name"`
	NetworkID    flexString `json:"network_id"`
}

func (d databaseJSON) toDomain() domain.Database {
	return domain.Database{
		DatabaseID:   string(d.DatabaseID),
		DatabaseName: string(d.DatabaseName),
		NetworkID:    string(d.NetworkID),
	}
}

func toDatabases(in []databaseJSON) []domain.Database {
	out := make([]domain.Database, 0, len(in))
	for _, d := range in {
		out = append(out, d.toDomain())
	}
	return out
}

// ListDatabases returns every database registered on the server.
func (c *client) ListDatabases(ctx context.Context) ([]domain.Database, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	var resp []databaseJSON
	if err := c.http.GetJSON(ctx, c.baseURL+"/manage/databases", false, &resp); err != nil {
		return nil, err
	}
	return toDatabases(resp), nil
}

// ListNetworkDatabases returns the databases of one network. A resource
// without a network answers with an error status or a body that is not a
// database list; both read as no databases. Transport failures are errors.
func (c *client) ListNetworkDatabases(ctx context.Context, networkID string) ([]domain.Database, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	rawURL := fmt.Sprintf("%s/manage/network/%s/databases/", c.baseURL, url.PathEscape(networkID))
	body, err := c.http.Get(ctx, rawURL, false)
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) && upstreamErr.StatusCode != 0 {
		log.WithError(err).WithField("network_id", networkID).Debug("network has no database list")
		return []domain.Database{}, nil
	}
	if err != nil {
		return nil, err
	}

	var resp []databaseJSON
	if err := json.Unmarshal(body, &resp); err != nil {
		log.WithError(err).WithField("network_id", networkID).Debug("network database list not decodable")
		return []domain.Database{}, nil
	}
	return toDatabases(resp), nil
}

type catalogJSON struct {
	TimeSeriesReferenceFile struct {
		ReferencedTimeSeries []struct {
			Site struct {
				SiteName  flexString `json:"siteName"`
				SiteCode  flexString `json:"siteCode"`
				Latitude  float64    `json:"latitude"`
				Longitude float64    `json:"longitude"`
			} `json:"site"`
			Variable struct {
				VariableName flexString `json:"variableName"`
				VariableCode flexString `json:"variableCode"`
			} `json:"variable"`
			Method struct {
				MethodLink        flexString `json:"methodLink"`
				MethodDescription flexString `json:"methodDescription"`
			} `json:"method"`
			SampleMedium flexString `json:"sampleMedium"`
			BeginDate    flexString `json:"beginDate"`
			EndDate      flexString `json:"endDate"`
			ValueCount   flexString `json:"valueCount"`
		} `json:"referencedTimeSeries"`
	} `json:"timeSeriesReferenceFile"`
}

// GetCatalog returns the ReFTS catalog of one database.
func (c *client) GetCatalog(ctx context.Context, source domain.TimeSeriesSource) ([]domain.ReferencedTimeSeries, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	params := url.Values{}
	params.Set("network_id", source.NetworkID)
	params.Set("database_id", source.DatabaseID)
	rawURL := c.baseURL + "/refts/catalog/?" + params.Encode()

	var resp catalogJSON
	if err := c.http.GetJSON(ctx, rawURL, false, &resp); err != nil {
		return nil, err
	}

	refs := resp.TimeSeriesReferenceFile.ReferencedTimeSeries
	out := make([]domain.ReferencedTimeSeries, 0, len(refs))
	for _, r := range refs {
		count, err := strconv.Atoi(string(r.ValueCount))
		if err != nil && r.ValueCount != "" {
			return nil, fmt.Errorf("%w: valueCount %q", domain.ErrUpstreamMalformed, r.ValueCount)
		}
		out = append(out, domain.ReferencedTimeSeries{
			Site: domain.Site{
				SiteName:  string(r.Site.SiteName),
				SiteCode:  string(r.Site.SiteCode),
				Latitude:  r.Site.Latitude,
				Longitude: r.Site.Longitude,
			},
			VariableName:      string(r.Variable.VariableName),
			VariableCode:      string(r.Variable.VariableCode),
			SampleMedium:      string(r.SampleMedium),
			BeginDate:         string(r.BeginDate),
			EndDate:           string(r.EndDate),
			ValueCount:        count,
			MethodLink:        string(r.Method.MethodLink),
			MethodDescription: string(r.Method.MethodDescription),
		})
	}
	return out, nil
}

// GetValues reads one site/variable series as WaterML 1.1.
func (c *client) GetValues(ctx context.Context, q ports.ValuesQuery) (*domain.TimeSeries, error) {
	if c.baseURL == "" {
		return nil, domain.ErrServiceDisabled
	}

	params := url.Values{}
	params.Set("site_code", q.SiteCode)
	params.Set("variable_code", q.VariableCode)
	rawURL := fmt.Sprintf("%s/wof/%s/%s/values/?%s",
		c.baseURL, url.PathEscape(q.Source.NetworkID), url.PathEscape(q.Source.DatabaseID), params.Encode())

	body, err := c.http.Get(ctx, rawURL, false)
	if err != nil {
		return nil, err
	}
	return parseWaterML(body)
}
