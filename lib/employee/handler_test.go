package employeehandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"hr-admin-console/lib/gateway"
	sessionhandler "hr-admin-console/lib/session"
	sessionstore "hr-admin-console/lib/session/store"
	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
	employeeapimodels "hr-admin-console/models/api/employee"
)

func newHandler(t *testing.T, srv *httptest.Server, role models.UserRole) Provider {
	store := sessionstore.NewInstance(filepath.Join(t.TempDir(), "session.json"))
	err := store.Set("header.payload.signature", authapimodels.UserView{ID: "u1", Role: role})
	require.Nil(t, err)
	gw := gateway.NewInstance(store, srv.Client())
	session := sessionhandler.NewInstance(srv.URL, gw, store, false)
	return NewInstance(srv.URL, gw, session)
}

func registerData() employeeapimodels.RegisterData {
	return employeeapimodels.RegisterData{
		Name:       "Иванов Иван",
		Email:      "ivanov@example.com",
		Password:   "secret123",
		EmployeeID: "EMP-7",
		Role:       models.UserRoleEmployee,
		Department: "d1",
	}
}

func TestRegister(t *testing.T) {
	t.Run(`без фото тело уходит как JSON`, func(t *testing.T) {
		gotContentType := ""
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/register", r.URL.Path)
			gotContentType = r.Header.Get("Content-Type")
			data := employeeapimodels.RegisterData{}
			require.Nil(t, json.NewDecoder(r.Body).Decode(&data))
			require.Equal(t, "EMP-7", data.EmployeeID)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"_id":"u2","employeeId":"EMP-7","role":"employee"}}`))
		}))
		defer srv.Close()
		handler := newHandler(t, srv, models.UserRoleHr)

		user, hMsg, err := handler.Register(context.Background(), registerData(), nil)
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, "u2", user.ID)
		require.Equal(t, "application/json", gotContentType)
	})

	t.Run(`с фото тело уходит multipart-формой`, func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
			require.Nil(t, r.ParseMultipartForm(1<<20))
			require.Equal(t, "ivanov@example.com", r.FormValue("email"))
			_, header, err := r.FormFile("photo")
			require.Nil(t, err)
			require.Equal(t, "photo.jpg", header.Filename)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"success":true,"data":{"_id":"u2"}}`))
		}))
		defer srv.Close()
		handler := newHandler(t, srv, models.UserRoleHr)

		user, hMsg, err := handler.Register(context.Background(), registerData(), &employeeapimodels.PhotoAttachment{
			FileName: "photo.jpg",
			Body:     []byte("jpegdata"),
		})
		require.Nil(t, err)
		require.Equal(t, "", hMsg)
		require.Equal(t, "u2", user.ID)
	})

	t.Run(`валидация и права проверяются до сети`, func(t *testing.T) {
		requests := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer srv.Close()

		handler := newHandler(t, srv, models.UserRoleHr)
		data := registerData()
		data.Email = "не-почта"
		_, hMsg, err := handler.Register(context.Background(), data, nil)
		require.Nil(t, err)
		require.Equal(t, "почта имеет неправильный формат", hMsg)

		handler = newHandler(t, srv, models.UserRoleManager)
		_, hMsg, err = handler.Register(context.Background(), registerData(), nil)
		require.Nil(t, err)
		require.Equal(t, "недостаточно прав для регистрации сотрудника", hMsg)
		require.Equal(t, 0, requests)
	})
}
