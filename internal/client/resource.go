package client

import (
	"context"
	"fmt"
	"net/http"
)

// resourceClient implements the five REST operations every upstream entity
// exposes: list, get, create (server assigns the id), full-replacement update
// and delete. Delete is not idempotent upstream — deleting twice yields a 404.
type resourceClient[E any] struct {
	c        *Client
	resource string
}

func (r resourceClient[E]) List(ctx context.Context) ([]E, error) {
	var out []E
	if err := r.c.do(ctx, http.MethodGet, r.resource, "/api/"+r.resource, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r resourceClient[E]) Get(ctx context.Context, id int64) (*E, error) {
	var out E
	path := fmt.Sprintf("/api/%s/%d", r.resource, id)
	if err := r.c.do(ctx, http.MethodGet, r.resource, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resourceClient[E]) Create(ctx context.Context, entity E) (*E, error) {
	var out E
	if err := r.c.do(ctx, http.MethodPost, r.resource, "/api/"+r.resource+"/add", entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resourceClient[E]) Update(ctx context.Context, id int64, entity E) (*E, error) {
	var out E
	path := fmt.Sprintf("/api/%s/update/%d", r.resource, id)
	if err := r.c.do(ctx, http.MethodPut, r.resource, path, entity, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r resourceClient[E]) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/%s/delete/%d", r.resource, id)
	return r.c.do(ctx, http.MethodDelete, r.resource, path, nil, nil)
}
