package backendclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-humble/colixy-dashboard/internal/model"
)

const testAPIKey = "test-key"

func newTestClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return NewClient(&http.Client{Jar: jar}, Config{
		BaseURL:      srv.URL + "/",
		ImageBaseURL: "https://img.example.com/",
		APIKey:       testAPIKey,
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClientSendsAPIKeyAndEnvelope(t *testing.T) {
	t.Parallel()

	name := gofakeit.ProductCategory()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, testAPIKey, r.Header.Get("x-api-key"))
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"data": []map[string]any{{"_id": "c1", "name": name, "description": "d"}},
		})
	})

	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, model.Category{ID: "c1", Name: name, Description: "d"}, cats[0])
}

func TestClientMissingDataIsEmpty(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{})
	})

	products, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestClientErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantMsg    string
		wantTarget error
	}{
		{
			name:       "backend message wins",
			status:     http.StatusBadRequest,
			body:       `{"message":"Nom déjà utilisé"}`,
			wantMsg:    "Nom déjà utilisé",
			wantTarget: model.ErrRequestFailed,
		},
		{
			name:       "fallback when body has no message",
			status:     http.StatusInternalServerError,
			body:       `<html>oops</html>`,
			wantMsg:    "Operation failed",
			wantTarget: model.ErrRequestFailed,
		},
		{
			name:       "not found unwraps",
			status:     http.StatusNotFound,
			body:       `{"error":"missing"}`,
			wantMsg:    "missing",
			wantTarget: model.ErrNotFound,
		},
		{
			name:       "unauthorized unwraps",
			status:     http.StatusUnauthorized,
			body:       `{}`,
			wantMsg:    "Operation failed",
			wantTarget: model.ErrUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			err := c.CreateCategory(context.Background(), model.CategoryInput{Name: "x"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantTarget)

			var reqErr *model.RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tc.wantMsg, reqErr.Message)
			assert.Equal(t, tc.status, reqErr.Status)
		})
	}
}

func TestClientNetworkFailure(t *testing.T) {
	t.Parallel()

	c := NewClient(&http.Client{}, Config{BaseURL: "http://127.0.0.1:1"})

	_, err := c.Parcels(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrRequestFailed)
	assert.Equal(t, "Erreur lors du chargement des colis", model.UserMessage(err))
}

func TestClientTransactionsQueryAndProductRef(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "entree", r.URL.Query().Get("type"))
		assert.False(t, r.URL.Query().Has("product"))
		_, _ = io.WriteString(w, `{"data":[
			{"_id":"t1","product":{"_id":"p1","name":"Vis"},"type":"entree","quantity":4,"createdAt":"2024-05-01T10:00:00Z"},
			{"_id":"t2","product":"p2","type":"sortie","quantity":1}
		]}`)
	})

	txs, err := c.Transactions(context.Background(), url.Values{"type": {"entree"}})
	require.NoError(t, err)
	require.Len(t, txs, 2)

	assert.Equal(t, "p1", txs[0].ProductID)
	assert.Equal(t, "Vis", txs[0].ProductName)
	assert.Equal(t, model.TransactionIn, txs[0].Type)
	assert.Equal(t, 2024, txs[0].CreatedAt.Year())

	assert.Equal(t, "p2", txs[1].ProductID)
	assert.Equal(t, model.TransactionOut, txs[1].Type)
}

func TestClientUploadImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "top level url", body: `{"url":"/uploads/a.png"}`, want: "/uploads/a.png"},
		{name: "enveloped url", body: `{"data":{"url":"/uploads/b.png"}}`, want: "/uploads/b.png"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/upload", r.URL.Path)
				require.NoError(t, r.ParseMultipartForm(1<<20))
				f, hdr, err := r.FormFile("image")
				require.NoError(t, err)
				defer f.Close()
				assert.Equal(t, "a.png", hdr.Filename)
				assert.Equal(t, "image/png", hdr.Header.Get("Content-Type"))
				_, _ = io.WriteString(w, tc.body)
			})

			u, err := c.UploadImage(context.Background(), model.ImageFile{
				Name:        "a.png",
				ContentType: "image/png",
				Size:        4,
				Body:        strings.NewReader("\x89PNG"),
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, u)
		})
	}
}

func TestClientUploadImageWithoutURL(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	_, err := c.UploadImage(context.Background(), model.ImageFile{Name: "a.png", ContentType: "image/png"})
	require.Error(t, err)
	assert.Equal(t, "Error uploading image", model.UserMessage(err))
}

func TestClientParcelDraftAndConfirm(t *testing.T) {
	t.Parallel()

	var (
		mu        sync.Mutex
		confirmed map[string]any
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/colis":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"code_barre": "ABC123"}, body)
			_, _ = io.WriteString(w, `{"data":{"code_barre":"ABC123","nom_destinataire":"Jane",
				"statut":"en_attente","etat_str":"En attente","payement_mode":2,"montant_reception":"150.5"}}`)
		case "/colis/confirm":
			mu.Lock()
			defer mu.Unlock()
			require.NoError(t, json.NewDecoder(r.Body).Decode(&confirmed))
			_, _ = io.WriteString(w, `{"data":{"_id":"x1","code_barre":"ABC123","statut":"en_attente"}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	draft, err := c.CreateParcelDraft(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", draft.Barcode)
	assert.Equal(t, "Jane", draft.RecipientName)
	assert.Equal(t, model.StatusPending, draft.Status)
	assert.Equal(t, "En attente", draft.StatusLabel)
	assert.Equal(t, "2", draft.PaymentMode)
	assert.True(t, decimal.RequireFromString("150.5").Equal(draft.Amount))

	p, err := c.ConfirmParcel(context.Background(), model.ParcelConfirmation{
		Barcode: draft.Barcode,
		Status:  draft.Status,
		ReviewFields: model.ReviewFields{
			RecipientName: "Jane",
			PaymentMode:   model.ReviewPaymentCash,
			Amount:        draft.Amount,
		},
		Items: []model.LineItem{{ProductID: "P1", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "x1", p.ID)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "ABC123", confirmed["code_barre"])
	assert.Equal(t, "en_attente", confirmed["statut"])
	assert.Equal(t, "1", confirmed["payement_mode"])
	assert.Equal(t, []any{map[string]any{"prodcut_id": "P1", "quantity": float64(2)}}, confirmed["Prodcuts"])
}

func TestClientDraftWithoutData(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})

	_, err := c.CreateParcelDraft(context.Background(), "NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrNoDraft)
}

func TestClientParcelPaths(t *testing.T) {
	t.Parallel()

	type call struct{ method, path string }
	var (
		mu  sync.Mutex
		got []call
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got = append(got, call{r.Method, r.URL.EscapedPath()})
		mu.Unlock()
		_, _ = io.WriteString(w, `{"data":null}`)
	})

	ctx := context.Background()
	require.NoError(t, c.RefreshPendingStatuses(ctx))
	_, err := c.MarkAsReturned(ctx, "AB/12")
	require.NoError(t, err)
	require.NoError(t, c.DeleteParcel(ctx, "id1"))
	_, err = c.ReturnStats(ctx, nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []call{
		{http.MethodPatch, "/colis/update-pending-status"},
		{http.MethodPatch, "/colis/AB%2F12/mark-as-returned"},
		{http.MethodDelete, "/colis/id1"},
		{http.MethodGet, "/colis-retour/stats"},
	}, got)
}

func TestClientLoginKeepsCookie(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/admin/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "secret", Path: "/"})
			_, _ = io.WriteString(w, `{"data":{"_id":"u1","name":"Root","role":"super_admin"}}`)
		case "/admin/verify":
			ck, err := r.Cookie("token")
			if err != nil || ck.Value != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"data":{"_id":"u1","name":"Root","role":"super_admin"}}`)
		}
	})

	ctx := context.Background()
	u, err := c.Login(ctx, model.Credentials{Email: gofakeit.Email(), Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperAdmin, u.Role)

	u, err = c.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
}

func TestClientUsersPagination(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/all", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = io.WriteString(w, `{"data":[{"_id":"u1","telephone":"+212 600"}],"page":2,"pageSize":10,"total":11}`)
	})

	page, err := c.Users(context.Background(), url.Values{"page": {"2"}, "pageSize": {"10"}})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, 11, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "+212 600", page.Items[0].Phone)
}

func TestClientImageURL(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, Config{ImageBaseURL: "https://img.example.com/"})

	assert.Equal(t, "", c.ImageURL(""))
	assert.Equal(t, "https://img.example.com/uploads/a.png", c.ImageURL("/uploads/a.png"))
	assert.Equal(t, "https://cdn.example.com/b.png", c.ImageURL("https://cdn.example.com/b.png"))
}
