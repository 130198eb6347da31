package ui

import (
	"github.com/marcus/notedeck/internal/modal"
)

// Modal widths shared by dialogs.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 70
)

// ConfirmDialog is a reusable confirmation modal with interactive buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Confirm ", " Delete ", " Yes "
	CancelLabel  string // e.g., " Cancel ", " No "
	Danger       bool   // destructive action: red accent, danger button
	Width        int
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// NewDeleteDialog creates a destructive confirmation dialog.
func NewDeleteDialog(title, message string) *ConfirmDialog {
	d := NewConfirmDialog(title, message)
	d.ConfirmLabel = " Delete "
	d.Danger = true
	return d
}

// ToModal adapts the dialog configuration into a modal.Modal instance.
// Enter on the confirm button yields "confirm"; Esc or the cancel button
// yields "cancel".
func (d *ConfirmDialog) ToModal() *modal.Modal {
	variant := modal.VariantDefault
	confirm := modal.Btn(d.ConfirmLabel, "confirm")
	if d.Danger {
		variant = modal.VariantDanger
		confirm = modal.Btn(d.ConfirmLabel, "confirm", modal.BtnDanger())
	}

	return modal.New(d.Title,
		modal.WithWidth(d.Width),
		modal.WithVariant(variant),
		modal.WithHints(false),
	).
		AddSection(modal.Text(d.Message)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			confirm,
			modal.Btn(d.CancelLabel, "cancel"),
		))
}
