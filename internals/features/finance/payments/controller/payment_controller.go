package controller

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"syndicapp_backend/internals/configs"
	chargemodel "syndicapp_backend/internals/features/finance/charges/model"
	dto "syndicapp_backend/internals/features/finance/payments/dto"
	m "syndicapp_backend/internals/features/finance/payments/model"
	service "syndicapp_backend/internals/features/finance/payments/service"
	notifmodel "syndicapp_backend/internals/features/home/notifications/model"
	notifservice "syndicapp_backend/internals/features/home/notifications/service"
	appartementmodel "syndicapp_backend/internals/features/property/appartements/model"
	immeublemodel "syndicapp_backend/internals/features/property/immeubles/model"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	helper "syndicapp_backend/internals/helpers"
)

type PaymentController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Reconciler *service.Reconciler
	Notifier   *notifservice.Notifier
}

func NewPaymentController(db *gorm.DB, v *validator.Validate) *PaymentController {
	return &PaymentController{
		DB:         db,
		Validator:  v,
		Reconciler: service.NewReconciler(service.NewStore(db)),
		Notifier:   notifservice.NewNotifier(db),
	}
}

/* =========================================================
   Create
========================================================= */

// Create records a payment. A syndic records money already received, so the
// payment lands confirmed; an owner declares a payment, which waits for the
// syndic's confirmation.
// POST /api/syndic/payments | POST /api/proprietaire/payments
func (ctl *PaymentController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	role := helper.GetUserRole(c)

	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Corps de requête invalide")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	charge, apt, err := ctl.loadChargeContext(c, req.ChargeID)
	if err != nil {
		return err
	}

	in := service.RecordPaymentInput{
		ChargeID:  charge.ChargeID,
		Montant:   req.Montant,
		Methode:   req.Methode,
		Reference: req.Reference,
		SyndicID:  charge.ChargeSyndicID,
		Notes:     req.Notes,
	}
	if in.Methode == "" {
		in.Methode = m.PaymentMethodeEspeces
	}
	if req.Date != nil {
		in.Date = *req.Date
	}

	switch role {
	case usermodel.RoleSyndic:
		if charge.ChargeSyndicID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Cette charge ne vous appartient pas")
		}
		in.Statut = m.PaymentStatutConfirme
		in.ProprietaireID = apt.AppartementProprietaireID
	case usermodel.RoleProprietaire:
		if apt.AppartementProprietaireID == nil || *apt.AppartementProprietaireID != userID {
			return helper.JsonError(c, fiber.StatusForbidden, "Cette charge ne concerne pas vos appartements")
		}
		in.Statut = m.PaymentStatutEnAttente
		in.ProprietaireID = &userID
	default:
		return helper.JsonError(c, fiber.StatusForbidden, "Rôle non autorisé")
	}

	payment, err := ctl.Reconciler.RecordPayment(c.UserContext(), in)
	if err != nil {
		return ctl.mapEngineError(c, err)
	}

	ctl.notifyAfterCreate(role, payment, charge)
	return helper.JsonCreated(c, "Paiement enregistré", dto.FromPaymentModel(*payment))
}

func (ctl *PaymentController) notifyAfterCreate(role string, p *m.PaymentModel, charge *chargemodel.ChargeModel) {
	meta := map[string]interface{}{
		"payment_id": p.PaymentID.String(),
		"charge_id":  charge.ChargeID.String(),
	}
	if role == usermodel.RoleProprietaire {
		ctl.Notifier.Push(p.PaymentSyndicID,
			notifmodel.NotificationTypePaiementRecu,
			"Paiement déclaré",
			"Un propriétaire a déclaré un paiement de "+p.PaymentMontant.StringFixed(2)+" € pour « "+charge.ChargeTitre+" ». Confirmation requise.",
			meta)
		return
	}
	if p.PaymentProprietaireID != nil {
		ctl.Notifier.Push(*p.PaymentProprietaireID,
			notifmodel.NotificationTypePaiementConfirme,
			"Paiement enregistré",
			"Le syndic a enregistré un paiement de "+p.PaymentMontant.StringFixed(2)+" € pour « "+charge.ChargeTitre+" ».",
			meta)
	}
}

/* =========================================================
   Confirm / Reject
========================================================= */

// Confirm — PATCH /api/syndic/payments/:id/confirmer
func (ctl *PaymentController) Confirm(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de paiement invalide")
	}
	if err := ctl.assertPaymentOwnership(c, paymentID, syndicID); err != nil {
		return err
	}

	payment, charge, err := ctl.Reconciler.ConfirmPayment(c.UserContext(), paymentID)
	if err != nil {
		return ctl.mapEngineError(c, err)
	}

	if payment.PaymentProprietaireID != nil {
		msg := "Votre paiement de " + payment.PaymentMontant.StringFixed(2) + " € pour « " + charge.ChargeTitre + " » a été confirmé."
		if charge.ChargeStatut != chargemodel.ChargeStatutPaye {
			msg += " Reste à payer : " + charge.ChargeMontantRestant.StringFixed(2) + " €."
		}
		ctl.Notifier.Push(*payment.PaymentProprietaireID,
			notifmodel.NotificationTypePaiementConfirme, "Paiement confirmé", msg,
			map[string]interface{}{
				"payment_id": payment.PaymentID.String(),
				"charge_id":  charge.ChargeID.String(),
			})
	}

	return helper.JsonUpdated(c, "Paiement confirmé", fiber.Map{
		"paiement":       dto.FromPaymentModel(*payment),
		"charge_statut":  charge.ChargeStatut,
		"charge_restant": charge.ChargeMontantRestant,
	})
}

// Reject — PATCH /api/syndic/payments/:id/rejeter
func (ctl *PaymentController) Reject(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de paiement invalide")
	}
	if err := ctl.assertPaymentOwnership(c, paymentID, syndicID); err != nil {
		return err
	}

	var req dto.RejectPaymentRequest
	_ = c.BodyParser(&req)
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	payment, err := ctl.Reconciler.RejectPayment(c.UserContext(), paymentID, req.Raison)
	if err != nil {
		return ctl.mapEngineError(c, err)
	}

	if payment.PaymentProprietaireID != nil {
		msg := "Votre paiement de " + payment.PaymentMontant.StringFixed(2) + " € a été rejeté."
		if req.Raison != "" {
			msg += " Motif : " + req.Raison
		}
		ctl.Notifier.Push(*payment.PaymentProprietaireID,
			notifmodel.NotificationTypePaiementRejete, "Paiement rejeté", msg,
			map[string]interface{}{"payment_id": payment.PaymentID.String()})
	}

	return helper.JsonUpdated(c, "Paiement rejeté", dto.FromPaymentModel(*payment))
}

/* =========================================================
   Lists
========================================================= */

// List — GET /api/syndic/payments?statut=&charge_id=
func (ctl *PaymentController) List(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	pg := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.UserContext()).
		Model(&m.PaymentModel{}).
		Where("payment_syndic_id = ?", syndicID)

	if s := strings.TrimSpace(c.Query("statut")); s != "" {
		tx = tx.Where("payment_statut = ?", s)
	}
	if s := strings.TrimSpace(c.Query("charge_id")); s != "" {
		if id, err := uuid.Parse(s); err == nil {
			tx = tx.Where("payment_charge_id = ?", id)
		}
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors du comptage des paiements")
	}

	var payments []m.PaymentModel
	if err := tx.Order("payment_date DESC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des paiements")
	}

	return helper.JsonList(c, dto.FromPaymentModelSlice(payments), fiber.Map{
		"pagination": helper.BuildPagination(total, pg.Page, pg.PerPage),
	})
}

// Pending — GET /api/syndic/payments/en-attente
func (ctl *PaymentController) Pending(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var payments []m.PaymentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_syndic_id = ? AND payment_statut = ?", syndicID, m.PaymentStatutEnAttente).
		Order("payment_created_at ASC").
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des paiements")
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModelSlice(payments))
}

// GetByID — GET /api/syndic/payments/:id
func (ctl *PaymentController) GetByID(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de paiement invalide")
	}

	var payment m.PaymentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_id = ? AND payment_syndic_id = ?", paymentID, syndicID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paiement non trouvé")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération du paiement")
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModel(payment))
}

// MyPayments — GET /api/proprietaire/payments
func (ctl *PaymentController) MyPayments(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	var payments []m.PaymentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("payment_proprietaire_id = ?", ownerID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération des paiements")
	}
	return helper.JsonOK(c, "OK", dto.FromPaymentModelSlice(payments))
}

/* =========================================================
   Documents (PDF)
========================================================= */

// Receipt streams the PDF receipt for one payment. The syndic of the payment
// and the paying owner are both allowed.
// GET /api/payments/:id/recu
func (ctl *PaymentController) Receipt(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de paiement invalide")
	}

	var payment m.PaymentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Paiement non trouvé")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération du paiement")
	}

	allowed := payment.PaymentSyndicID == userID ||
		(payment.PaymentProprietaireID != nil && *payment.PaymentProprietaireID == userID)
	if !allowed {
		return helper.JsonError(c, fiber.StatusForbidden, "Accès refusé à ce reçu")
	}

	charge, apt, err := ctl.loadChargeContext(c, payment.PaymentChargeID)
	if err != nil {
		return err
	}

	data := service.ReceiptData{
		Payment:      &payment,
		Charge:       charge,
		Proprietaire: ctl.ownerName(c, payment.PaymentProprietaireID),
		Appartement:  "Appartement " + apt.AppartementNumero,
	}
	var imm immeublemodel.ImmeubleModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&imm, "immeuble_id = ?", apt.AppartementImmeubleID).Error; err == nil {
		data.Immeuble = imm.ImmeubleNom
	}

	var buf bytes.Buffer
	if err := service.RenderReceiptPDF(&buf, data); err != nil {
		configs.Log.WithError(err).Error("échec de génération du reçu PDF")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la génération du reçu")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="recu-`+payment.PaymentID.String()+`.pdf"`)
	return c.Send(buf.Bytes())
}

// History returns the owner's payment history, as JSON or as a PDF when
// ?format=pdf.
// GET /api/proprietaire/payments/historique
func (ctl *PaymentController) History(c *fiber.Ctx) error {
	ownerID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}

	tx := ctl.DB.WithContext(c.UserContext()).
		Where("payment_proprietaire_id = ?", ownerID)
	if s := strings.TrimSpace(c.Query("start")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			tx = tx.Where("payment_date >= ?", t)
		}
	}
	if s := strings.TrimSpace(c.Query("end")); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			tx = tx.Where("payment_date < ?", t.AddDate(0, 0, 1))
		}
	}

	var payments []m.PaymentModel
	if err := tx.Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de l'historique")
	}

	if strings.EqualFold(c.Query("format"), "pdf") {
		titles := ctl.chargeTitles(c, payments)
		data := service.HistoryData{
			Proprietaire: ctl.ownerName(c, &ownerID),
			Payments:     payments,
			ChargeTitles: titles,
		}
		var buf bytes.Buffer
		if err := service.RenderHistoryPDF(&buf, data); err != nil {
			configs.Log.WithError(err).Error("échec de génération de l'historique PDF")
			return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la génération de l'historique")
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="historique-paiements.pdf"`)
		return c.Send(buf.Bytes())
	}

	return helper.JsonOK(c, "OK", dto.FromPaymentModelSlice(payments))
}

// Remind marks a charge overdue and streams the reminder PDF ("Avis Client").
// The stored aggregates self-heal before the overdue overlay is applied.
// POST /api/syndic/charges/:id/rappel
func (ctl *PaymentController) Remind(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	chargeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de charge invalide")
	}

	var owned chargemodel.ChargeModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("charge_id = ? AND charge_syndic_id = ?", chargeID, syndicID).
		First(&owned).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Charge non trouvée")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de la charge")
	}

	charge, err := ctl.Reconciler.MarkOverdue(c.UserContext(), chargeID)
	if err != nil {
		return ctl.mapEngineError(c, err)
	}

	_, apt, err := ctl.loadChargeContext(c, chargeID)
	if err != nil {
		return err
	}
	data := service.ReminderData{
		Charge:       charge,
		Proprietaire: ctl.ownerName(c, apt.AppartementProprietaireID),
		Appartement:  "Appartement " + apt.AppartementNumero,
	}
	var buf bytes.Buffer
	if err := service.RenderReminderPDF(&buf, data); err != nil {
		configs.Log.WithError(err).Error("échec de génération de l'avis PDF")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la génération de l'avis")
	}

	pdfURL, err := service.SaveDocument("avis-client-"+charge.ChargeID.String()+".pdf", buf.Bytes())
	if err != nil {
		configs.Log.WithError(err).Warn("échec de l'archivage de l'avis PDF")
	}

	if apt.AppartementProprietaireID != nil {
		meta := map[string]interface{}{"charge_id": charge.ChargeID.String()}
		if pdfURL != "" {
			meta["pdf_url"] = pdfURL
		}
		ctl.Notifier.Push(*apt.AppartementProprietaireID,
			notifmodel.NotificationTypeRappelPaiement,
			"Rappel de paiement",
			"Rappel : la charge « "+charge.ChargeTitre+" » présente un solde impayé de "+charge.ChargeMontantRestant.StringFixed(2)+" €.",
			meta)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="avis-client-`+charge.ChargeID.String()+`.pdf"`)
	return c.Send(buf.Bytes())
}

/* =========================================================
   Delete
========================================================= */

// Delete — DELETE /api/syndic/payments/:id
func (ctl *PaymentController) Delete(c *fiber.Ctx) error {
	syndicID, err := helper.GetUserUUID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Utilisateur non identifié")
	}
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identifiant de paiement invalide")
	}
	if err := ctl.assertPaymentOwnership(c, paymentID, syndicID); err != nil {
		return err
	}

	if err := ctl.Reconciler.DeletePayment(c.UserContext(), paymentID); err != nil {
		return ctl.mapEngineError(c, err)
	}
	return helper.JsonDeleted(c, "Paiement supprimé", fiber.Map{"payment_id": paymentID})
}

/* =========================================================
   Internals
========================================================= */

func (ctl *PaymentController) loadChargeContext(c *fiber.Ctx, chargeID uuid.UUID) (*chargemodel.ChargeModel, *appartementmodel.AppartementModel, error) {
	var charge chargemodel.ChargeModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&charge, "charge_id = ?", chargeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, helper.JsonError(c, fiber.StatusNotFound, "Charge non trouvée")
		}
		return nil, nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de la charge")
	}
	var apt appartementmodel.AppartementModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&apt, "appartement_id = ?", charge.ChargeAppartementID).Error; err != nil {
		return nil, nil, helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la récupération de l'appartement")
	}
	return &charge, &apt, nil
}

func (ctl *PaymentController) assertPaymentOwnership(c *fiber.Ctx, paymentID, syndicID uuid.UUID) error {
	var count int64
	if err := ctl.DB.WithContext(c.UserContext()).
		Model(&m.PaymentModel{}).
		Where("payment_id = ? AND payment_syndic_id = ?", paymentID, syndicID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur lors de la vérification du paiement")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Paiement non trouvé")
	}
	return nil
}

func (ctl *PaymentController) ownerName(c *fiber.Ctx, ownerID *uuid.UUID) string {
	if ownerID == nil {
		return "—"
	}
	var u usermodel.UserModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&u, "user_id = ?", *ownerID).Error; err != nil {
		return "—"
	}
	return u.FullName()
}

func (ctl *PaymentController) chargeTitles(c *fiber.Ctx, payments []m.PaymentModel) map[string]string {
	ids := make([]uuid.UUID, 0, len(payments))
	seen := make(map[uuid.UUID]bool, len(payments))
	for _, p := range payments {
		if !seen[p.PaymentChargeID] {
			seen[p.PaymentChargeID] = true
			ids = append(ids, p.PaymentChargeID)
		}
	}
	titles := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return titles
	}
	var charges []chargemodel.ChargeModel
	if err := ctl.DB.WithContext(c.UserContext()).
		Where("charge_id IN ?", ids).
		Find(&charges).Error; err != nil {
		return titles
	}
	for _, ch := range charges {
		titles[ch.ChargeID.String()] = ch.ChargeTitre
	}
	return titles
}

// Reminders for deleted charges and double confirmations all surface here.
func (ctl *PaymentController) mapEngineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrChargeNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Charge non trouvée")
	case errors.Is(err, service.ErrPaymentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Paiement non trouvé")
	case errors.Is(err, service.ErrInvalidState):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyPaid):
		return helper.JsonError(c, fiber.StatusConflict, "Cette charge est déjà payée intégralement")
	default:
		configs.Log.WithError(err).Error("erreur du moteur de rapprochement")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Erreur interne")
	}
}
