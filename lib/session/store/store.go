package sessionstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	authapimodels "hr-admin-console/models/api/auth"
)

// Provider - хранилище учетных данных текущей сессии.
// Токен и запись личности живут строго парой: записываются вместе при входе
// и вычищаются вместе при выходе или при ответе сервера 401.
// Владелец записи - контроллер сессии, шлюз только читает токен
// и вычищает пару при 401.
type Provider interface {
	Set(token string, user authapimodels.UserView) error
	Token() string
	User() *authapimodels.UserView
	HasCredential() bool
	Clear() error
}

func NewInstance(filePath string) Provider {
	i := &impl{
		filePath: filePath,
	}
	i.load()
	return i
}

type impl struct {
	mu       sync.RWMutex
	filePath string
	rec      *persistedCredential
}

type persistedCredential struct {
	Token string                 `json:"token"`
	User  authapimodels.UserView `json:"user"`
}

func (i *impl) Set(token string, user authapimodels.UserView) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	rec := persistedCredential{
		Token: token,
		User:  user,
	}
	if err := i.persist(&rec); err != nil {
		return err
	}
	i.rec = &rec
	return nil
}

func (i *impl) Token() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.rec == nil {
		return ""
	}
	return i.rec.Token
}

func (i *impl) User() *authapimodels.UserView {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if i.rec == nil {
		return nil
	}
	user := i.rec.User
	return &user
}

func (i *impl) HasCredential() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.rec != nil && i.rec.Token != ""
}

func (i *impl) Clear() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.rec = nil
	err := os.Remove(i.filePath)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "ошибка удаления файла сессии")
	}
	return nil
}

func (i *impl) load() {
	body, err := os.ReadFile(i.filePath)
	if err != nil {
		return
	}
	rec := persistedCredential{}
	if err = json.Unmarshal(body, &rec); err != nil {
		// битый файл сессии равнозначен его отсутствию
		_ = os.Remove(i.filePath)
		return
	}
	if rec.Token == "" {
		return
	}
	i.rec = &rec
}

// persist - пара пишется атомарно, через временный файл с переименованием
func (i *impl) persist(rec *persistedCredential) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации данных сессии")
	}
	dir := filepath.Dir(i.filePath)
	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return errors.Wrap(err, "ошибка создания временного файла сессии")
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "ошибка записи файла сессии")
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "ошибка закрытия файла сессии")
	}
	if err = os.Rename(tmpName, i.filePath); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "ошибка сохранения файла сессии")
	}
	return nil
}
