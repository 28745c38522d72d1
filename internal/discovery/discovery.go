// Package discovery lists the cookie stores kooky can find and reports which of their profile
// directories also hold a saved-login store.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register every browser finder

	"github.com/ondrovic/browser-logins/internal/browsers"
	"github.com/ondrovic/browser-logins/internal/types"
)

// StoreProvider returns the cookie stores to inspect.
type StoreProvider func(ctx context.Context) []kooky.CookieStore

// FindAll is the provider backed by every browser kooky supports.
func FindAll(ctx context.Context) []kooky.CookieStore {
	return kooky.FindAllCookieStores(ctx)
}

// Inventory inspects every store the provider returns and closes each one. Results are sorted by
// browser, then profile, then cookie path.
func Inventory(ctx context.Context, provider StoreProvider) []types.CookieStoreInfo {
	if provider == nil {
		provider = FindAll
	}

	infos := []types.CookieStoreInfo{}
	for _, store := range provider(ctx) {
		if store == nil {
			continue
		}
		info := types.CookieStoreInfo{
			Browser:    store.Browser(),
			Profile:    store.Profile(),
			CookiePath: store.FilePath(),
			IsDefault:  store.IsDefaultProfile(),
		}
		if path, ok := loginDataNear(info.CookiePath); ok {
			info.LoginDataPath = path
			info.HasLoginData = true
		}
		_ = store.Close()
		infos = append(infos, info)
	}

	sort.SliceStable(infos, func(i, j int) bool {
		a, b := infos[i], infos[j]
		if a.Browser != b.Browser {
			return a.Browser < b.Browser
		}
		if a.Profile != b.Profile {
			return a.Profile < b.Profile
		}
		return a.CookiePath < b.CookiePath
	})
	return infos
}

// loginDataNear looks for Login Data beside the cookie file and, for Chromium's Network/Cookies
// layout, one directory up.
func loginDataNear(cookiePath string) (string, bool) {
	if cookiePath == "" {
		return "", false
	}
	dir := filepath.Dir(cookiePath)
	for _, candidate := range []string{dir, filepath.Dir(dir)} {
		path := filepath.Join(candidate, browsers.CredentialFile)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
