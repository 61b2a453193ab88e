package useragent_test

import (
	"testing"

	"github.com/serroba/shortify/internal/useragent"
	"github.com/stretchr/testify/assert"
)

const (
	chromeDesktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	safariMobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	iPadUA          = "Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
)

func TestParse(t *testing.T) {
	t.Run("classifies a desktop browser", func(t *testing.T) {
		snapshot := useragent.Parse(chromeDesktopUA)

		assert.Equal(t, useragent.DeviceDesktop, snapshot.DeviceType)
		assert.Equal(t, "Chrome", snapshot.Browser)
		assert.Equal(t, "Windows", snapshot.OS)
	})

	t.Run("classifies a mobile browser", func(t *testing.T) {
		snapshot := useragent.Parse(safariMobileUA)

		assert.Equal(t, useragent.DeviceMobile, snapshot.DeviceType)
	})

	t.Run("classifies a tablet", func(t *testing.T) {
		snapshot := useragent.Parse(iPadUA)

		assert.Equal(t, useragent.DeviceTablet, snapshot.DeviceType)
	})

	t.Run("unrecognized agents default to desktop", func(t *testing.T) {
		snapshot := useragent.Parse("totally-unknown-client/1.0")

		assert.Equal(t, useragent.DeviceDesktop, snapshot.DeviceType)
	})

	t.Run("empty agent defaults to desktop", func(t *testing.T) {
		snapshot := useragent.Parse("")

		assert.Equal(t, useragent.DeviceDesktop, snapshot.DeviceType)
		assert.Empty(t, snapshot.Browser)
		assert.Empty(t, snapshot.OS)
	})
}
