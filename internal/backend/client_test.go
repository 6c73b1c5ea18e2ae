package backend

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"springjewels-storefront/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, log.New(io.Discard, "", 0))
}

func TestListProducts_QueryContract(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{"content":[],"totalPages":0,"totalElements":0,"number":0,"size":20}`))
	})

	catID := int64(3)
	_, err := c.ListProducts(context.Background(), ListQuery{
		Page:       2,
		Size:       12,
		SortBy:     "price",
		SortOrder:  "desc",
		CategoryID: &catID,
		Search:     "nhẫn",
	})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	q, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("parse query %q: %v", got, err)
	}
	for key, want := range map[string]string{
		"page": "2", "size": "12", "sortBy": "price", "sortOrder": "desc",
		"categoryId": "3", "search": "nhẫn",
	} {
		if q.Get(key) != want {
			t.Fatalf("query %s = %q, want %q (full query %q)", key, q.Get(key), want, got)
		}
	}
}

func TestListProducts_Defaults(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		w.Write([]byte(`{"content":[]}`))
	})

	if _, err := c.ListProducts(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("list products: %v", err)
	}
	q, err := url.ParseQuery(got)
	if err != nil {
		t.Fatalf("parse query %q: %v", got, err)
	}
	if q.Get("size") != "20" || q.Get("sortBy") != "id" || q.Get("sortOrder") != "asc" {
		t.Fatalf("unexpected defaults in %q", got)
	}
	if q.Has("categoryId") || q.Has("search") {
		t.Fatalf("expected optional params omitted, got %q", got)
	}
}

func TestDecodeError_Taxonomy(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, domain.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, domain.ErrForbidden},
		{"not found", http.StatusNotFound, `{"status":404,"message":"no such product"}`, domain.ErrNotFound},
		{"conflict", http.StatusConflict, `{"status":409,"message":"duplicate"}`, domain.ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			_, err := c.GetProduct(context.Background(), 1)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodeError_ValidationFieldMap(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username":"không được để trống","email":"không hợp lệ"}`))
	})

	_, err := c.Register(context.Background(), domain.Registration{})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if vErr.Fields["username"] == "" || vErr.Fields["email"] == "" {
		t.Fatalf("expected both field messages, got %v", vErr.Fields)
	}
}

func TestDecodeError_EnvelopeNotMistakenForFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"400","error":"Bad Request","message":"malformed id","path":"/api/products/x"}`))
	})

	_, err := c.GetProduct(context.Background(), 1)
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		t.Fatalf("error envelope misread as field map: %v", vErr.Fields)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusBadRequest {
		t.Fatalf("expected plain 400 status error, got %v", err)
	}
}

func TestCancelOrder_IllegalStateFoldsToNotFound(t *testing.T) {
	// The backend rejects cancelling a shipped order with a 500.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"status":500,"message":"Chỉ có thể hủy đơn hàng đang chờ xử lý"}`))
	})

	_, err := c.CancelOrder(context.Background(), "tok", 9)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound fold, got %v", err)
	}
}

func TestDo_TransportErrorIsUnreachable(t *testing.T) {
	c := New("http://127.0.0.1:1", log.New(io.Discard, "", 0))
	_, err := c.ListCategories(context.Background())
	if !errors.Is(err, domain.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestBearerTokenForwarded(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})

	if _, err := c.OrderHistory(context.Background(), "jwt-123"); err != nil {
		t.Fatalf("order history: %v", err)
	}
	if auth != "Bearer jwt-123" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
}
