package service

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	model "syndicapp_backend/internals/features/finance/payments/model"
)

/* =========================================================
   PDF documents (reçus, avis, historiques)
========================================================= */

type ReceiptData struct {
	Payment      *model.PaymentModel
	Charge       *chargemodel.ChargeModel
	Proprietaire string
	Appartement  string
	Immeuble     string
}

type ReminderData struct {
	Charge       *chargemodel.ChargeModel
	Proprietaire string
	Appartement  string
	Immeuble     string
}

type HistoryData struct {
	Proprietaire string
	Payments     []model.PaymentModel
	ChargeTitles map[string]string // charge_id -> titre
}

func newDoc(title string) (*gofpdf.Fpdf, func(string) string) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr("Édité le "+time.Now().Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)
	return pdf, tr
}

func kvRow(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(55, 8, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, tr(value), "", 1, "L", false, 0, "")
}

func euros(d decimal.Decimal) string {
	return d.StringFixed(2) + " EUR"
}

// RenderReceiptPDF writes a payment receipt. Pending payments render with a
// mention that confirmation is still due.
func RenderReceiptPDF(w io.Writer, d ReceiptData) error {
	pdf, tr := newDoc("Reçu de paiement")

	kvRow(pdf, tr, "Référence", d.Payment.PaymentID.String())
	kvRow(pdf, tr, "Propriétaire", d.Proprietaire)
	if d.Appartement != "" {
		kvRow(pdf, tr, "Appartement", d.Appartement)
	}
	if d.Immeuble != "" {
		kvRow(pdf, tr, "Immeuble", d.Immeuble)
	}
	kvRow(pdf, tr, "Charge", d.Charge.ChargeTitre)
	kvRow(pdf, tr, "Montant versé", euros(d.Payment.PaymentMontant))
	kvRow(pdf, tr, "Méthode", d.Payment.PaymentMethode)
	if d.Payment.PaymentReference != nil && *d.Payment.PaymentReference != "" {
		kvRow(pdf, tr, "Référence pièce", *d.Payment.PaymentReference)
	}
	kvRow(pdf, tr, "Date de paiement", d.Payment.PaymentDate.Format("02/01/2006"))
	kvRow(pdf, tr, "Statut", d.Payment.PaymentStatut)
	kvRow(pdf, tr, "Reste à payer", euros(d.Payment.PaymentRemainingAmount))

	if d.Payment.IsPending() {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Ce paiement est en attente de confirmation par le syndic. Ce document ne vaut pas quittance."), "", "L", false)
	}

	return pdf.Output(w)
}

// RenderReminderPDF writes the "Avis Client" payment reminder for an unpaid
// charge.
func RenderReminderPDF(w io.Writer, d ReminderData) error {
	pdf, tr := newDoc("Avis Client - Rappel de paiement")

	kvRow(pdf, tr, "Propriétaire", d.Proprietaire)
	if d.Appartement != "" {
		kvRow(pdf, tr, "Appartement", d.Appartement)
	}
	if d.Immeuble != "" {
		kvRow(pdf, tr, "Immeuble", d.Immeuble)
	}
	kvRow(pdf, tr, "Charge", d.Charge.ChargeTitre)
	kvRow(pdf, tr, "Montant total", euros(d.Charge.ChargeMontant))
	kvRow(pdf, tr, "Déjà payé", euros(d.Charge.ChargeMontantPaye))
	kvRow(pdf, tr, "Reste à payer", euros(d.Charge.ChargeMontantRestant))
	kvRow(pdf, tr, "Échéance", d.Charge.ChargeDateEcheance.Format("02/01/2006"))

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(fmt.Sprintf(
		"Sauf erreur ou omission de notre part, la charge « %s » présente un solde impayé de %s. "+
			"Nous vous remercions de bien vouloir régulariser votre situation dans les meilleurs délais.",
		d.Charge.ChargeTitre, euros(d.Charge.ChargeMontantRestant))), "", "L", false)

	return pdf.Output(w)
}

// RenderHistoryPDF writes the payment history table for one owner.
func RenderHistoryPDF(w io.Writer, d HistoryData) error {
	pdf, tr := newDoc("Historique des paiements")

	kvRow(pdf, tr, "Propriétaire", d.Proprietaire)
	pdf.Ln(4)

	headers := []struct {
		label string
		width float64
	}{
		{"Date", 25}, {"Charge", 60}, {"Montant", 28}, {"Méthode", 25}, {"Statut", 30},
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(h.width, 8, tr(h.label), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	total := decimal.Zero
	for _, p := range d.Payments {
		titre := d.ChargeTitles[p.PaymentChargeID.String()]
		pdf.CellFormat(25, 7, p.PaymentDate.Format("02/01/2006"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, tr(titre), "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 7, euros(p.PaymentMontant), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, tr(p.PaymentMethode), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, tr(p.PaymentStatut), "1", 1, "C", false, 0, "")
		if p.IsConfirmed() {
			total = total.Add(p.PaymentMontant)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 8, tr("Total confirmé : "+euros(total)), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}
