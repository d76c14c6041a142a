package sessionstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hr-admin-console/models"
	authapimodels "hr-admin-console/models/api/auth"
)

func TestStore(t *testing.T) {
	user := authapimodels.UserView{
		ID:    "u1",
		Name:  "Иванов Иван",
		Email: "ivanov@example.com",
		Role:  models.UserRoleAdmin,
	}

	t.Run(`токен и личность живут парой`, func(t *testing.T) {
		store := NewInstance(filepath.Join(t.TempDir(), "session.json"))
		require.False(t, store.HasCredential())

		err := store.Set("header.payload.signature", user)
		require.Nil(t, err)
		require.True(t, store.HasCredential())
		require.Equal(t, "header.payload.signature", store.Token())
		require.NotNil(t, store.User())
		require.Equal(t, "Иванов Иван", store.User().Name)

		err = store.Clear()
		require.Nil(t, err)
		require.False(t, store.HasCredential())
		require.Equal(t, "", store.Token())
		require.Nil(t, store.User())
	})

	t.Run(`сессия переживает перезапуск процесса`, func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "session.json")
		store := NewInstance(filePath)
		err := store.Set("header.payload.signature", user)
		require.Nil(t, err)

		reopened := NewInstance(filePath)
		require.True(t, reopened.HasCredential())
		require.Equal(t, "header.payload.signature", reopened.Token())
		require.Equal(t, "u1", reopened.User().ID)
	})

	t.Run(`очистка вычищает и файл`, func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "session.json")
		store := NewInstance(filePath)
		err := store.Set("header.payload.signature", user)
		require.Nil(t, err)
		err = store.Clear()
		require.Nil(t, err)

		_, err = os.Stat(filePath)
		require.True(t, os.IsNotExist(err))
		require.False(t, NewInstance(filePath).HasCredential())
	})

	t.Run(`повторная очистка без файла не ошибка`, func(t *testing.T) {
		store := NewInstance(filepath.Join(t.TempDir(), "session.json"))
		require.Nil(t, store.Clear())
		require.Nil(t, store.Clear())
	})

	t.Run(`битый файл сессии равнозначен отсутствию`, func(t *testing.T) {
		filePath := filepath.Join(t.TempDir(), "session.json")
		err := os.WriteFile(filePath, []byte("{not-json"), 0o600)
		require.Nil(t, err)

		store := NewInstance(filePath)
		require.False(t, store.HasCredential())
		_, err = os.Stat(filePath)
		require.True(t, os.IsNotExist(err))
	})
}
