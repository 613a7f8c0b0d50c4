package pdf

// invoiceHTML is the print layout. Amounts arrive preformatted in whole GNF;
// the sign of the balance row is carried by the label, not clamped.
const invoiceHTML = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; margin: 40px; }
  h1 { font-size: 20px; margin-bottom: 0; }
  .meta { color: #666; margin-bottom: 24px; }
  .parties { display: flex; justify-content: space-between; margin-bottom: 32px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { padding: 6px 8px; border-bottom: 1px solid #ddd; text-align: left; }
  td.amount, th.amount { text-align: right; white-space: nowrap; }
  tfoot td { border: none; font-weight: bold; }
  .totals { margin-top: 16px; width: 45%; margin-left: auto; }
  .totals td { border: none; padding: 3px 8px; }
  .totals tr.due td { border-top: 2px solid #222; font-weight: bold; }
  .notes { margin-top: 32px; color: #555; }
</style>
</head>
<body>
  <h1>Facture {{.InvoiceNumber}}</h1>
  <div class="meta">
    Dossier {{.TrackingNumber}}
    {{if .IssuedAt}} — émise le {{date .IssuedAt}}{{end}}
    {{if .DueDate}} — échéance le {{date .DueDate}}{{end}}
  </div>

  <div class="parties">
    <div>
      <strong>{{.CompanyName}}</strong><br>
      {{.CompanyAddress}}<br>
      {{if .CompanyNIF}}NIF : {{.CompanyNIF}}{{end}}
    </div>
    <div>
      <strong>Client</strong><br>
      {{.ClientName}}<br>
      {{.ClientPhone}}
    </div>
  </div>

  <table>
    <thead>
      <tr><th>Désignation</th><th>Qté</th><th class="amount">Montant</th></tr>
    </thead>
    <tbody>
      {{range .Lines}}
      <tr>
        <td>{{.Description}}</td>
        <td>{{.Quantity}}</td>
        <td class="amount">{{gnf .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <table class="totals">
    <tr><td>Sous-total</td><td class="amount">{{gnf .Subtotal}}</td></tr>
    {{if .TaxAmount}}<tr><td>TVA (honoraires)</td><td class="amount">{{gnf .TaxAmount}}</td></tr>{{end}}
    <tr><td>Total</td><td class="amount">{{gnf .TotalAmount}}</td></tr>
    <tr><td>Provisions reçues</td><td class="amount">{{gnf .TotalProvisions}}</td></tr>
    <tr class="due"><td>{{.BalanceLabel}}</td><td class="amount">{{gnf .AmountDue}}</td></tr>
  </table>

  {{if .Notes}}<div class="notes">{{.Notes}}</div>{{end}}
</body>
</html>`
