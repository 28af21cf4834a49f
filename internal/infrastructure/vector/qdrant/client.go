package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

const sourceIDPayloadKey = "source_id"

// pointNamespace derives stable point ids from corpus source ids, so
// re-indexing overwrites points instead of duplicating them.
var pointNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("nerdvana-retrieval/qdrant-points"))

type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
	executor   *resilience.Executor

	ensureMu          sync.Mutex
	ensuredCollection bool
	ensuredVectorSize int
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, collection string) *Client {
	return NewWithOptions(baseURL, collection, Options{})
}

func NewWithOptions(baseURL, collection string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

func PointID(sourceID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(sourceID)).String()
}

func (c *Client) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := c.ensureCollection(ctx, len(records[0].Vector)); err != nil {
		return err
	}

	type point struct {
		ID      string         `json:"id"`
		Vector  []float32      `json:"vector"`
		Payload map[string]any `json:"payload"`
	}

	points := make([]point, 0, len(records))
	for _, record := range records {
		payload := make(map[string]any, len(record.Metadata)+1)
		for k, v := range record.Metadata {
			payload[k] = v
		}
		payload[sourceIDPayloadKey] = record.ID
		points = append(points, point{
			ID:      PointID(record.ID),
			Vector:  record.Vector,
			Payload: payload,
		})
	}

	url := fmt.Sprintf("%s/collections/%s/points?wait=true", c.baseURL, c.collection)
	return c.do(ctx, "qdrant.upsert", http.MethodPut, url, map[string]any{"points": points}, nil)
}

func (c *Client) Query(ctx context.Context, vector []float32, limit int) ([]domain.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 12
	}

	reqBody := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var searchResp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	if err := c.do(ctx, "qdrant.search", http.MethodPost, url, reqBody, &searchResp); err != nil {
		return nil, err
	}

	out := make([]domain.VectorMatch, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		id := getStringPayload(r.Payload, sourceIDPayloadKey)
		if id == "" {
			continue
		}
		out = append(out, domain.VectorMatch{ID: id, Score: r.Score})
	}
	return out, nil
}

// Contains reports whether a point exists for every source id. A missing
// collection holds nothing.
func (c *Client) Contains(ctx context.Context, ids []string) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	pointIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, PointID(id))
	}

	reqBody := map[string]any{
		"ids":          pointIDs,
		"with_payload": false,
		"with_vector":  false,
	}
	var retrieveResp struct {
		Result []struct {
			ID string `json:"id"`
		} `json:"result"`
	}

	url := fmt.Sprintf("%s/collections/%s/points", c.baseURL, c.collection)
	err := c.do(ctx, "qdrant.retrieve", http.MethodPost, url, reqBody, &retrieveResp)
	if resilience.IsHTTPStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	found := make(map[string]struct{}, len(retrieveResp.Result))
	for _, point := range retrieveResp.Result {
		found[point.ID] = struct{}{}
	}
	for _, id := range pointIDs {
		if _, ok := found[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (c *Client) ensureCollection(ctx context.Context, vectorSize int) error {
	c.ensureMu.Lock()
	if c.ensuredCollection && c.ensuredVectorSize == vectorSize {
		c.ensureMu.Unlock()
		return nil
	}
	c.ensureMu.Unlock()

	reqBody := map[string]any{
		"vectors": map[string]any{
			"size":     vectorSize,
			"distance": "Cosine",
		},
	}

	url := fmt.Sprintf("%s/collections/%s", c.baseURL, c.collection)
	err := c.do(ctx, "qdrant.ensure_collection", http.MethodPut, url, reqBody, nil)
	if err != nil && !resilience.IsHTTPStatus(err, http.StatusConflict) {
		return err
	}
	c.markCollectionEnsured(vectorSize)
	return nil
}

func (c *Client) markCollectionEnsured(vectorSize int) {
	c.ensureMu.Lock()
	defer c.ensureMu.Unlock()
	c.ensuredCollection = true
	c.ensuredVectorSize = vectorSize
}

func (c *Client) do(ctx context.Context, operation, method, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s body: %w", operation, err)
	}

	call := func(callCtx context.Context) error {
		req, err := http.NewRequestWithContext(callCtx, method, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create %s request: %w", operation, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("%s request: %w", operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return &resilience.HTTPStatusError{
				Operation:  operation,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(msg)),
			}
		}
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}

	if c.executor == nil {
		return call(ctx)
	}
	err = c.executor.Execute(ctx, operation, call, resilience.ClassifyHTTPError)
	return resilience.WrapTemporary(operation, err, resilience.ClassifyHTTPError)
}

func getStringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
