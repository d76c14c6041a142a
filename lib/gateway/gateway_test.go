package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sessionstore "hr-admin-console/lib/session/store"
	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
)

func newStore(t *testing.T) sessionstore.Provider {
	return sessionstore.NewInstance(filepath.Join(t.TempDir(), "session.json"))
}

func newAuthorizedStore(t *testing.T) sessionstore.Provider {
	store := newStore(t)
	err := store.Set("header.payload.signature", authapimodels.UserView{
		ID:   "u1",
		Role: models.UserRoleHr,
	})
	require.Nil(t, err)
	return store
}

func TestAuthorizationAttachment(t *testing.T) {
	t.Run(`без учетных данных вызов не доходит до сети`, func(t *testing.T) {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer srv.Close()

		i := NewInstance(newStore(t), srv.Client())
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.False(t, res.Success)
		require.Equal(t, models.ErrKindUnauthenticated, res.Kind)
		require.Equal(t, 0, requests)
	})

	t.Run(`bearer-токен подкладывается из хранилища`, func(t *testing.T) {
		gotAuth := ""
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"ok":true}}`))
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.True(t, res.Success)
		require.Equal(t, "Bearer header.payload.signature", gotAuth)
	})

	t.Run(`неавторизованный маршрут уходит без заголовка`, func(t *testing.T) {
		gotAuth := "unset"
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		i := NewInstance(newStore(t), srv.Client())
		res := i.Do(context.Background(), srv.URL+"/auth/login", RequestOpts{
			Method: http.MethodPost,
			Body:   map[string]string{"email": "a@b.c"},
			NoAuth: true,
		})
		require.True(t, res.Success)
		require.Equal(t, "", gotAuth)
	})
}

func TestClassification(t *testing.T) {
	t.Run(`401 вычищает сессию до возврата результата`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"message":"jwt expired"}`))
		}))
		defer srv.Close()

		store := newAuthorizedStore(t)
		i := NewInstance(store, srv.Client())
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.True(t, res.IsKind(models.ErrKindSessionExpired))
		require.False(t, store.HasCredential())
		require.Nil(t, store.User())
	})

	t.Run(`403 - отказ в доступе с сообщением сервера`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"success":false,"message":"только для администраторов"}`))
		}))
		defer srv.Close()

		store := newAuthorizedStore(t)
		i := NewInstance(store, srv.Client())
		res := i.Get(context.Background(), srv.URL+"/departments", nil)
		require.True(t, res.IsKind(models.ErrKindAccessDenied))
		require.Equal(t, "только для администраторов", res.Message)
		// доступ запрещен, но сессия остается
		require.True(t, store.HasCredential())
	})

	t.Run(`400 с ошибками по полям - плоское сообщение в фиксированном порядке`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"errors":{"startDate":"обязательное поле","email":"неправильный формат"}}`))
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Post(context.Background(), srv.URL+"/leaves", map[string]string{})
		require.True(t, res.IsKind(models.ErrKindValidationFailed))
		require.Equal(t, "email: неправильный формат; startDate: обязательное поле", res.Message)
	})

	t.Run(`прочие неуспешные ответы со сгенерированным сообщением`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.True(t, res.IsKind(models.ErrKindRequestFailed))
		require.Equal(t, "HTTP 500: Internal Server Error", res.Message)
	})

	t.Run(`2xx с телом вне контракта конверта`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,`))
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.True(t, res.IsKind(models.ErrKindRequestFailed))
		require.Equal(t, "ответ сервера не соответствует контракту", res.Message)
	})

	t.Run(`2xx без json-тела - успех с пустыми данными`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Post(context.Background(), srv.URL+"/auth/logout", nil)
		require.True(t, res.Success)
		require.Empty(t, res.Data)
	})

	t.Run(`недоступный сервер - сетевая ошибка, не паника`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		i := NewInstance(newAuthorizedStore(t), &http.Client{Timeout: time.Second})
		res := i.Get(context.Background(), srv.URL+"/leaves", nil)
		require.True(t, res.IsKind(models.ErrKindNetwork))
	})

	t.Run(`отмена вызывающей стороной`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()
		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Get(ctx, srv.URL+"/leaves/export", nil)
		require.True(t, res.IsKind(models.ErrKindCancelled))
	})
}

func TestMultipart(t *testing.T) {
	t.Run(`multipart-тело уходит с границей от транспорта`, func(t *testing.T) {
		gotContentType := ""
		gotField := ""
		gotFile := ""
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotContentType = r.Header.Get("Content-Type")
			require.Nil(t, r.ParseMultipartForm(1<<20))
			gotField = r.FormValue("name")
			_, header, err := r.FormFile("photo")
			require.Nil(t, err)
			gotFile = header.Filename
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		i := NewInstance(newAuthorizedStore(t), srv.Client())
		res := i.Do(context.Background(), srv.URL+"/auth/register", RequestOpts{
			Method: http.MethodPost,
			Multipart: &MultipartBody{
				Fields: map[string]string{"name": "Иванов Иван"},
				Files: []MultipartFile{
					{Field: "photo", FileName: "photo.jpg", Body: []byte("jpegdata")},
				},
			},
		})
		require.True(t, res.Success)
		require.True(t, strings.HasPrefix(gotContentType, "multipart/form-data; boundary="))
		require.Equal(t, "Иванов Иван", gotField)
		require.Equal(t, "photo.jpg", gotFile)
	})
}
