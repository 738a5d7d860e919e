package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	internal "github.com/ZanzyTHEbar/recent-documents/rdocs"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/documents"
	"github.com/ZanzyTHEbar/recent-documents/rdocs/retry"

	"github.com/rs/zerolog"
)

// SearchConfig configures a SearchSource.
type SearchConfig struct {
	SiteURL   string
	QueryText string
	RowLimit  int
	Timeout   time.Duration
	Retry     retry.Config
}

// SearchSource reads records from a SharePoint search REST endpoint.
type SearchSource struct {
	client   *http.Client
	endpoint string
	retry    retry.Config
	logger   zerolog.Logger
}

// NewSearchSource builds a SearchSource. client may be nil.
func NewSearchSource(cfg SearchConfig, client *http.Client, logger zerolog.Logger) (*SearchSource, error) {
	site := strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if site == "" {
		return nil, fmt.Errorf("%w: search site URL is empty", documents.ErrInvalidArgument)
	}
	if _, err := url.ParseRequestURI(site); err != nil {
		return nil, fmt.Errorf("%w: invalid search site URL: %v", documents.ErrInvalidArgument, err)
	}

	query := cfg.QueryText
	if strings.TrimSpace(query) == "" {
		query = internal.DefaultSearchQueryText
	}
	params := url.Values{}
	params.Set("querytext", "'"+query+"'")
	if cfg.RowLimit > 0 {
		params.Set("rowlimit", strconv.Itoa(cfg.RowLimit))
	}

	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retry.DefaultConfig()
	}

	return &SearchSource{
		client:   client,
		endpoint: site + "/_api/search/query?" + params.Encode(),
		retry:    cfg.Retry,
		logger:   logger,
	}, nil
}

// Endpoint returns the query URL the source requests.
func (s *SearchSource) Endpoint() string { return s.endpoint }

// FetchRecords runs the search query, retrying transport errors and 5xx/429 replies.
func (s *SearchSource) FetchRecords(ctx context.Context) ([]documents.Record, error) {
	attempt := 0
	records, err := retry.DoWithResult(ctx, s.retry, func() ([]documents.Record, error) {
		attempt++
		recs, err := s.fetchOnce(ctx)
		if err != nil {
			s.logger.Debug().Err(err).Int("attempt", attempt).Msg("search query failed")
		}
		return recs, err
	})
	if err != nil {
		return nil, fmt.Errorf("search query %s: %w", s.endpoint, err)
	}
	s.logger.Debug().Int("records", len(records)).Msg("search query returned")
	return records, nil
}

func (s *SearchSource) fetchOnce(ctx context.Context) ([]documents.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json;odata=nometadata")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, retry.Retryable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			return nil, retry.Retryable(statusErr)
		}
		return nil, statusErr
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return payload.records()
}

type searchResponse struct {
	PrimaryQueryResult struct {
		RelevantResults struct {
			RowCount int `json:"RowCount"`
			Table    struct {
				Rows []struct {
					Cells []searchCell `json:"Cells"`
				} `json:"Rows"`
			} `json:"Table"`
		} `json:"RelevantResults"`
	} `json:"PrimaryQueryResult"`
}

type searchCell struct {
	Key   string  `json:"Key"`
	Value *string `json:"Value"`
}

func (r searchResponse) records() ([]documents.Record, error) {
	rows := r.PrimaryQueryResult.RelevantResults.Table.Rows
	records := make([]documents.Record, 0, len(rows))
	var errs []error
	for i, row := range rows {
		cells := make(map[string]string, len(row.Cells))
		for _, c := range row.Cells {
			if c.Value != nil {
				cells[c.Key] = *c.Value
			}
		}
		rec, err := recordFromCells(cells)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return records, nil
}

func recordFromCells(cells map[string]string) (documents.Record, error) {
	link := cells["Path"]
	ext := strings.ToLower(strings.TrimPrefix(cells["FileExtension"], "."))

	name := cells["Filename"]
	if name == "" {
		name = cells["Title"]
		if name != "" && ext != "" && !strings.HasSuffix(strings.ToLower(name), "."+ext) {
			name += "." + ext
		}
	}
	if name == "" && link != "" {
		name = path.Base(link)
	}
	if name == "" {
		return documents.Record{}, errors.New("result has no title, file name or path")
	}

	value := cells["UniqueId"]
	if value == "" {
		value = link
	}
	if value == "" {
		value = name
	}

	raw := cells["LastModifiedTime"]
	if raw == "" {
		return documents.Record{}, fmt.Errorf("result %q has no LastModifiedTime", name)
	}
	modified, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return documents.Record{}, fmt.Errorf("invalid LastModifiedTime %q: %w", raw, err)
	}

	var sizeKB int64
	if raw := cells["Size"]; raw != "" {
		bytes, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return documents.Record{}, fmt.Errorf("invalid Size %q: %w", raw, err)
		}
		sizeKB = (bytes + 1023) / 1024
	}

	icon := ""
	if documents.HasIcon(ext) {
		icon = documents.IconURL(ext)
	}

	return documents.New(name, value, icon, modified, sizeKB, link), nil
}
