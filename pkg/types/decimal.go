package types

import "github.com/shopspring/decimal"

// Prices render as bare JSON numbers (12.5, not "12.5"); the desktop client
// feeds them straight into numeric inputs. Input parsing accepts both forms.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
