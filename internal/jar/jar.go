// Package jar provides a file-backed cookie jar so the session cookie
// set by the backend survives between CLI invocations. The client never
// invents cookie values: only what Set-Cookie placed in the jar is
// persisted, and only the CSRF cookie is ever read back by name.
package jar

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// persistedCookie is the on-disk representation of one cookie.
type persistedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// persistedJar is the on-disk file format.
type persistedJar struct {
	SavedAt time.Time         `json:"saved_at"`
	Cookies []persistedCookie `json:"cookies"`
}

// Jar is an http.CookieJar that mirrors the cookies of a single origin
// to a JSON file. All methods are safe for concurrent use.
type Jar struct {
	mu   sync.Mutex
	jar  *cookiejar.Jar
	path string
	base *url.URL
}

// New creates a jar rooted at base, loading any cookies previously
// persisted at path. A missing or unreadable file starts empty.
func New(path string, base *url.URL) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	j := &Jar{jar: inner, path: path, base: base}
	j.load()
	return j, nil
}

// SetCookies stores cookies for u and persists the origin's cookies.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jar.SetCookies(u, cookies)
	j.save()
}

// Cookies returns the cookies to send with a request to u.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.jar.Cookies(u)
}

// Cookie returns the value of the named cookie for the jar's origin.
func (j *Jar) Cookie(name string) (string, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range j.jar.Cookies(j.base) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Clear drops every cookie for the jar's origin and removes the
// persisted file.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()

	expired := make([]*http.Cookie, 0)
	for _, c := range j.jar.Cookies(j.base) {
		expired = append(expired, &http.Cookie{Name: c.Name, Value: "", MaxAge: -1})
	}
	j.jar.SetCookies(j.base, expired)
	_ = os.Remove(j.path)
}

// load restores persisted cookies. Errors are ignored: a corrupt or
// missing file simply means starting unauthenticated.
func (j *Jar) load() {
	data, err := os.ReadFile(j.path)
	if err != nil {
		return
	}
	var stored persistedJar
	if err := json.Unmarshal(data, &stored); err != nil {
		return
	}
	cookies := make([]*http.Cookie, 0, len(stored.Cookies))
	for _, c := range stored.Cookies {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	j.jar.SetCookies(j.base, cookies)
}

// save writes the origin's cookies to disk. Callers hold j.mu.
func (j *Jar) save() {
	if j.path == "" {
		return
	}
	stored := persistedJar{SavedAt: time.Now()}
	for _, c := range j.jar.Cookies(j.base) {
		stored.Cookies = append(stored.Cookies, persistedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(j.path, data, 0o600)
}
