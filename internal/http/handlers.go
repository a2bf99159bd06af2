package http

import (
	"net/http"

	"despesas/internal/log"
	"despesas/internal/services"
)

const (
	msgBadRequest       = "Formato da requisição inválido."
	msgExpenseNotFound  = "Despesa não encontrada."
	msgCategoryNotFound = "Categoria não encontrada."
	msgCategoryRejected = "Informe um nome de categoria válido e ainda não cadastrado."
	msgCategoryEmpty    = "Informe o novo nome da categoria."
	msgStorageFailure   = "Não foi possível salvar os dados. Tente novamente."
	msgTooManyWrites    = "Muitas requisições. Tente novamente em instantes."
)

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := s.ledger.Expenses()
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, newExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Invalid expense body", log.FieldError, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
		return
	}
	e, err := s.ledger.SubmitDraft(r.Context(), req.toDraft(), nil)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newExpenseResponse(e))
}

// handleEditDraft returns the fields used to pre-fill an edit form.
func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgExpenseNotFound})
		return
	}
	d, err := s.ledger.RequestEdit(id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draftResponse{
		Description: d.Description,
		Amount:      d.AmountText,
		Payer:       d.Payer,
		Category:    d.Category,
	})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgExpenseNotFound})
		return
	}
	var req draftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.FromContext(r.Context()).WarnContext(r.Context(), "Invalid expense body", log.FieldError, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
		return
	}
	e, err := s.ledger.SubmitDraft(r.Context(), req.toDraft(), &id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseResponse(e))
}

// handleDeleteExpense removes an expense once the caller confirmed with
// confirm=true. Deleting a missing id succeeds with removed=false.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgExpenseNotFound})
		return
	}
	if !confirmed(r) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: services.ConfirmDeleteExpense})
		return
	}
	removed, err := s.ledger.RequestDelete(r.Context(), id, services.Always)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.writeCategories(w, http.StatusOK)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
		return
	}
	added, err := s.ledger.AddCategory(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !added {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msgCategoryRejected, Field: "name"})
		return
	}
	s.writeCategories(w, http.StatusCreated)
}

// handleRenameCategory renames the category at index. Expenses keep the
// name they were recorded with.
func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	index, ok := s.categoryIndex(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgCategoryNotFound})
		return
	}
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msgBadRequest})
		return
	}
	renamed, err := s.ledger.RenameCategory(r.Context(), index, services.Fixed(sanitizeInput(req.Name)))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !renamed {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: msgCategoryEmpty, Field: "name"})
		return
	}
	s.writeCategories(w, http.StatusOK)
}

func (s *Server) handleRemoveCategory(w http.ResponseWriter, r *http.Request) {
	index, ok := s.categoryIndex(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgCategoryNotFound})
		return
	}
	if !confirmed(r) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: services.ConfirmDeleteCategory})
		return
	}
	removed, err := s.ledger.RemoveCategory(r.Context(), index, services.Always)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: msgCategoryNotFound})
		return
	}
	s.writeCategories(w, http.StatusOK)
}

// writeCategories responds with the current list and each entry's index.
func (s *Server) writeCategories(w http.ResponseWriter, status int) {
	cats := s.ledger.Categories()
	out := make([]categoryResponse, 0, len(cats))
	for i, name := range cats {
		out = append(out, categoryResponse{Index: i, Name: name})
	}
	writeJSON(w, status, out)
}

// categoryIndex parses the index path value and checks it against the current list.
func (s *Server) categoryIndex(r *http.Request) (int, bool) {
	n, ok := pathInt(r, "index")
	if !ok || n >= int64(len(s.ledger.Categories())) {
		return 0, false
	}
	return int(n), true
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newReportResponse(s.ledger.Report()))
}

func (s *Server) handlePayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Payers())
}
