package usecase

import "app/internal/domain/model"

// 明細に小計・税額を足したもの
type PricedCartItem struct {
	model.CartItem
	ItemSubtotal float64 `json:"item_subtotal"`
	ItemTax      float64 `json:"item_tax"`
}

type CartSummary struct {
	Subtotal float64 `json:"subtotal"`
	TotalTax float64 `json:"total_tax"`
	Total    float64 `json:"total"`
}

// OAS: CartItemsResponse
type CartItemsOutput struct {
	Items   []PricedCartItem `json:"items"`
	Summary CartSummary      `json:"summary"`
}

// 金額計算の本体。DBには触らない。
// itemSubtotal = quantity × price、itemTax = itemSubtotal × taxRate。
// 丸めはしない（float64のまま返す）。
func priceCart(items []model.CartItem) CartItemsOutput {
	priced := make([]PricedCartItem, 0, len(items))
	var summary CartSummary

	for _, it := range items {
		if it.Product == nil {
			// 結合先の商品が消えている行は金額に含めない
			continue
		}

		subtotal := float64(it.Quantity) * it.Product.Price
		tax := subtotal * it.Product.TaxRate

		priced = append(priced, PricedCartItem{
			CartItem:     it,
			ItemSubtotal: subtotal,
			ItemTax:      tax,
		})

		summary.Subtotal += subtotal
		summary.TotalTax += tax
	}

	summary.Total = summary.Subtotal + summary.TotalTax

	return CartItemsOutput{Items: priced, Summary: summary}
}
