// Package templates renders transactional email bodies.
package templates

import (
	"bytes"
	"html/template"
	"log"
)

// ReceiptItem is one order line rendered in the receipt table.
type ReceiptItem struct {
	Name     string
	Quantity int
	Price    float64
}

// ReceiptProps carries everything the order receipt template needs.
type ReceiptProps struct {
	Name            string
	OrderID         string
	Items           []ReceiptItem
	Subtotal        float64
	Tax             float64
	ShippingCharges float64
	Discount        float64
	Total           float64
}

var receiptTemplate = template.Must(template.New("orderReceipt").Parse(`
<!doctype html>
<html lang="en">
  <head>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
    <title>Order confirmation</title>
  </head>
  <body style="font-family: Helvetica, sans-serif; font-size: 16px; line-height: 1.3; background-color: #f4f5f6; margin: 0; padding: 24px;">
    <table role="presentation" border="0" cellpadding="0" cellspacing="0" width="100%" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 8px;">
      <tr>
        <td style="padding: 24px;">
          <p style="margin: 0 0 16px;">Hi {{.Name}},</p>
          <p style="margin: 0 0 16px;">Thanks for your order! Here is your receipt for order <strong>{{.OrderID}}</strong>.</p>
          <table border="0" cellpadding="8" cellspacing="0" width="100%" style="border-collapse: collapse; margin-bottom: 16px;">
            <tr style="border-bottom: 1px solid #e0e0e0;">
              <th align="left">Item</th>
              <th align="right">Qty</th>
              <th align="right">Price</th>
            </tr>
            {{range .Items}}
            <tr style="border-bottom: 1px solid #f0f0f0;">
              <td>{{.Name}}</td>
              <td align="right">{{.Quantity}}</td>
              <td align="right">{{printf "%.2f" .Price}}</td>
            </tr>
            {{end}}
          </table>
          <table border="0" cellpadding="4" cellspacing="0" width="100%" style="border-collapse: collapse;">
            <tr><td align="right">Subtotal:</td><td align="right" width="100">{{printf "%.2f" .Subtotal}}</td></tr>
            <tr><td align="right">Shipping:</td><td align="right">{{printf "%.2f" .ShippingCharges}}</td></tr>
            <tr><td align="right">Tax:</td><td align="right">{{printf "%.2f" .Tax}}</td></tr>
            <tr><td align="right">Discount:</td><td align="right">-{{printf "%.2f" .Discount}}</td></tr>
            <tr><td align="right"><strong>Total:</strong></td><td align="right"><strong>{{printf "%.2f" .Total}}</strong></td></tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`))

// GetOrderReceiptEmail renders the order receipt HTML body.
func GetOrderReceiptEmail(props ReceiptProps) string {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, props); err != nil {
		log.Printf("ERROR: Failed to execute receipt template: %v", err)
		return ""
	}
	return buf.String()
}
