package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-pos/services"
	"github.com/yeremiapane/restaurant-pos/utils"
)

type InvoiceController struct {
	Invoices *services.InvoiceService
}

func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{Invoices: invoices}
}

func (ic *InvoiceController) GetAllInvoices(c *gin.Context) {
	invoices, err := ic.Invoices.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch invoices")
		return
	}
	utils.RespondJSON(c, http.StatusOK, invoices)
}

// GetInvoice -> id boleh berupa id invoice atau id order
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	invoice, err := ic.Invoices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch invoice")
		return
	}
	utils.RespondJSON(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) GetInvoiceByOrder(c *gin.Context) {
	invoice, err := ic.Invoices.GetByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.RespondError(c, err, "Failed to fetch invoice")
		return
	}
	utils.RespondJSON(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	var req services.CreateInvoiceInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to create invoice")
		return
	}
	invoice, err := ic.Invoices.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to create invoice")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, invoice)
}

func (ic *InvoiceController) UpdateInvoice(c *gin.Context) {
	var req services.UpdateInvoiceInput
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to update invoice")
		return
	}
	invoice, err := ic.Invoices.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err, "Failed to update invoice")
		return
	}
	utils.RespondJSON(c, http.StatusOK, invoice)
}

func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	id := c.Param("id")
	if err := ic.Invoices.Delete(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err, "Failed to delete invoice")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{"id": id})
}

// SendInvoice -> belum mengirim email, hanya dicatat di log
func (ic *InvoiceController) SendInvoice(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err, "Failed to send email")
		return
	}
	if err := ic.Invoices.Send(c.Request.Context(), c.Param("id"), req.Email); err != nil {
		utils.RespondError(c, err, "Failed to send email")
		return
	}
	utils.RespondJSON(c, http.StatusOK, gin.H{
		"message": "Email sent successfully",
		"sentTo":  req.Email,
	})
}

// InvoicePDF -> placeholder teks, belum PDF sungguhan
func (ic *InvoiceController) InvoicePDF(c *gin.Context) {
	content, invoice, err := ic.Invoices.Placeholder(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Failed to generate PDF")
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%s.txt"`, invoice.ID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
