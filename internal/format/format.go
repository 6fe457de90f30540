// Package format renders feed values for people: function names, relative
// and absolute times, LYX amounts, shortened addresses and explorer links.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gabapcia/blockfeed/internal/pkg/types"

	"github.com/holiman/uint256"
)

// TestnetChainID is the LUKSO testnet; every other chain links to mainnet.
const TestnetChainID = 4201

const (
	mainnetExplorer = "https://explorer.lukso.network"
	testnetExplorer = "https://explorer.execution.testnet.lukso.network"

	// imageCDN serves resizable profile images.
	imageCDN = "api.universalprofile.cloud/image"
)

// genericLabel is shown for calls without a decoded function name.
const genericLabel = "Contract Interaction"

// FunctionName turns a camelCase function name into words:
// "setDataBatch" becomes "Set Data Batch".
func FunctionName(name string) string {
	if name == "" {
		return genericLabel
	}

	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(b.String())
}

func plural(n int64, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}

// RelativeTime describes how long before now the unix timestamp ts was.
// Anything older than a week is shown as a date.
func RelativeTime(ts int64, now time.Time) string {
	diff := now.Unix() - ts

	switch {
	case diff < 60:
		return "just now"
	case diff < 3600:
		return plural(diff/60, "min")
	case diff < 86400:
		return plural(diff/3600, "hour")
	case diff < 604800:
		return plural(diff/86400, "day")
	}

	return shortDate(time.Unix(ts, 0).In(now.Location()), now)
}

// FullTime renders ts as "3:04 PM · Jan 2", in now's location.
func FullTime(ts int64, now time.Time) string {
	t := time.Unix(ts, 0).In(now.Location())
	return t.Format("3:04 PM") + " · " + shortDate(t, now)
}

// shortDate omits the year when t falls in the same year as now.
func shortDate(t, now time.Time) string {
	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}

var weiPerLYX = uint256.NewInt(1_000_000_000_000_000_000)

// LYX formats a wei amount with up to four fraction digits. Zero is "".
func LYX(value types.BigInt) string {
	if value.IsZero() {
		return ""
	}

	v := value.Uint256()
	whole, fraction := new(uint256.Int), new(uint256.Int)
	whole.DivMod(v, weiPerLYX, fraction)

	if fraction.IsZero() {
		return whole.Dec() + " LYX"
	}

	digits := fmt.Sprintf("%018s", fraction.Dec())
	digits = strings.TrimRight(digits, "0")
	if len(digits) > 4 {
		digits = digits[:4]
	}

	return whole.Dec() + "." + digits + " LYX"
}

// ShortenAddress keeps the first 6 and last 4 characters.
func ShortenAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

func explorer(chainID int) string {
	if chainID == TestnetChainID {
		return testnetExplorer
	}
	return mainnetExplorer
}

// ExplorerTxURL links a transaction on the block explorer of chainID.
func ExplorerTxURL(hash string, chainID int) string {
	return explorer(chainID) + "/tx/" + hash
}

// ExplorerAddressURL links an address on the block explorer of chainID.
func ExplorerAddressURL(address string, chainID int) string {
	return explorer(chainID) + "/address/" + address
}

// OptimizeImageURL asks the profile image CDN for an image twice as wide as
// renderedWidth. Other URLs are returned unchanged.
func OptimizeImageURL(url string, renderedWidth int) string {
	if !strings.Contains(url, imageCDN) {
		return url
	}

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%swidth=%d", url, sep, renderedWidth*2)
}
