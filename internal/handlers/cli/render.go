package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gabapcia/blockfeed/internal/activity"
	"github.com/gabapcia/blockfeed/internal/format"
	"github.com/gabapcia/blockfeed/internal/identity"
	"github.com/gabapcia/blockfeed/internal/tokenid"
	"github.com/gabapcia/blockfeed/internal/txclass"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"
)

var feedHeader = []string{"Time", "Type", "From", "To", "Value", "Token", "Tx"}

// renderer prints transactions and identities as tables.
type renderer struct {
	s   Services
	out io.Writer
}

func (r renderer) party(address string) string {
	if address == "" {
		return "-"
	}
	if id, ok := r.s.Identities.Get(address); ok && id.HasName() {
		return id.DisplayName()
	}
	return format.ShortenAddress(address)
}

// tokenID renders the tokenId argument of NFT transactions.
func (r renderer) tokenID(ctx context.Context, tx activity.Transaction, class txclass.Classification) string {
	if class.Type != txclass.NFTTransfer && class.Type != txclass.NFTMint && class.Type != txclass.TokenMetadataUpdate {
		return ""
	}

	arg, ok := tx.Arg("tokenId")
	if !ok {
		return ""
	}
	raw, ok := arg.String()
	if !ok || raw == "" {
		return ""
	}

	if r.s.TokenIDs == nil || !common.IsHexAddress(tx.To) {
		return tokenid.AutoDecode(raw).Display
	}
	return r.s.TokenIDs.DecodeTokenID(ctx, common.HexToAddress(tx.To), raw).Display
}

func (r renderer) transactions(ctx context.Context, title string, txs []activity.Transaction, now time.Time) {
	if title != "" {
		fmt.Fprintln(r.out, title)
	}

	table := tablewriter.NewWriter(r.out)
	table.SetHeader(feedHeader)
	table.SetAutoWrapText(false)

	for _, tx := range txs {
		class := txclass.Classify(tx)
		table.Append([]string{
			format.RelativeTime(tx.BlockTimestamp, now),
			class.Label,
			r.party(tx.From),
			r.party(tx.To),
			format.LYX(tx.Value),
			r.tokenID(ctx, tx, class),
			format.ShortenAddress(tx.TransactionHash),
		})
	}

	table.Render()
}

func (r renderer) identities(ctx context.Context, addresses []string) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Address", "Name", "Standard", "Kind", "Image", "Media"})
	table.SetAutoWrapText(false)

	for _, address := range addresses {
		id, ok := r.s.Identities.Get(address)
		if !ok {
			table.Append([]string{address, "-", "", "", "", ""})
			continue
		}

		image := firstImage(id)
		mediaType := ""
		if image != "" && r.s.Media != nil {
			mediaType = string(r.s.Media.Detect(ctx, image))
		}

		kind := "profile"
		if identity.IsEOA(&id) {
			kind = "eoa"
		}
		if id.LSP4TokenName != "" || id.IsLSP7 != nil || id.IsCollection != nil {
			kind = "asset"
		}

		table.Append([]string{address, orDash(id.DisplayName()), id.Standard, kind, image, mediaType})
	}

	table.Render()
}

func firstImage(id identity.Identity) string {
	for _, images := range [][]identity.Image{id.ProfileImages, id.Icons, id.Images} {
		for _, image := range images {
			if image.Src != "" {
				return image.Src
			}
		}
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
