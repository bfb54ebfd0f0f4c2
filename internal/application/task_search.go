package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/taskhub-api/internal/domain/entity"
	"github.com/oksasatya/taskhub-api/internal/domain/repository"
)

// indexTask mirrors the task into the search index. Best effort: a
// failed index call is logged and the request proceeds.
func (s *TaskService) indexTask(ctx context.Context, t *entity.Task) {
	if s.ES == nil || s.ESTasksIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"status":      t.Status,
		"priority":    t.Priority,
		"owner_id":    t.OwnerID,
		"assignee_id": t.AssigneeID,
		"created_at":  t.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESTasksIndex,
		DocumentID: strconv.FormatInt(t.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("task_id", t.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("task_id", t.ID).Warn("es index response error")
	}
}

// searchTasks performs a multi_match search on title and description,
// constrained by the same filter used for repository listings so the
// authorization scope holds in both paths.
func (s *TaskService) searchTasks(ctx context.Context, term string, f repository.TaskFilter, skip, size int) ([]map[string]any, int64, error) {
	must := []map[string]any{
		{
			"multi_match": map[string]any{
				"query":  term,
				"fields": []string{"title^2", "description"},
			},
		},
	}
	var filter []map[string]any
	if f.ViewerID != nil {
		filter = append(filter, map[string]any{
			"bool": map[string]any{
				"should": []map[string]any{
					{"term": map[string]any{"owner_id": *f.ViewerID}},
					{"term": map[string]any{"assignee_id": *f.ViewerID}},
				},
				"minimum_should_match": 1,
			},
		})
	}
	if f.OwnerID != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"owner_id": *f.OwnerID}})
	}
	if f.AssigneeID != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"assignee_id": *f.AssigneeID}})
	}
	if f.Status != nil {
		filter = append(filter, map[string]any{"term": map[string]any{"status": string(*f.Status)}})
	}

	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"from": skip,
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESTasksIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
		s.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		s.Logger.WithError(err).Warn("es search failed")
		return nil, 0, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, parsed.Hits.Total.Value, nil
}
