package httpapi

import (
	"net/http"
	"strings"

	"kadrio.org/internal/auth"
	"kadrio.org/internal/employee"
)

type createEmployeeRequest struct {
	DepartmentID string `json:"department_id"`
	Position     string `json:"position"`
	Email        string `json:"email"`
	Status       string `json:"status"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	IDNumber     string `json:"id_number"`
	BankAccount  string `json:"bank_account"`
}

type updateEmployeeRequest struct {
	DepartmentID *string `json:"department_id"`
	Position     *string `json:"position"`
	Email        *string `json:"email"`
	Status       *string `json:"status"`
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	IDNumber     *string `json:"id_number"`
	BankAccount  *string `json:"bank_account"`
}

func (a *API) handleEmployeesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listEmployees(w, r)
	case http.MethodPost:
		a.createEmployee(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleEmployeeResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/employees/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if path == "search" {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.searchEmployees(w, r)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getEmployee(w, r, path)
	case http.MethodPut:
		a.updateEmployee(w, r, path)
	case http.MethodDelete:
		a.deleteEmployee(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (a *API) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ac, _ := auth.AccessFromContext(r.Context())
	doc, err := a.employees.Create(r.Context(), ac, employee.NewEmployee{
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Email:        req.Email,
		Status:       req.Status,
		Name:         req.Name,
		Phone:        req.Phone,
		IDNumber:     req.IDNumber,
		BankAccount:  req.BankAccount,
	})
	if err != nil {
		handleEmployeeError(w, r, err)
		return
	}

	if id, ok := doc["id"].(string); ok {
		w.Header().Set("Location", "/v1/employees/"+id)
	}
	a.respond(w, r, http.StatusCreated, doc)
}

func (a *API) getEmployee(w http.ResponseWriter, r *http.Request, id string) {
	ac, _ := auth.AccessFromContext(r.Context())
	doc, err := a.employees.Get(r.Context(), ac, id)
	if err != nil {
		handleEmployeeError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, doc)
}

func (a *API) listEmployees(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.AccessFromContext(r.Context())
	docs, err := a.employees.List(r.Context(), ac)
	if err != nil {
		handleEmployeeError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, map[string]any{"items": docs})
}

func (a *API) searchEmployees(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if phone == "" {
		writeError(w, r, http.StatusBadRequest, "phone query parameter is required")
		return
	}

	ac, _ := auth.AccessFromContext(r.Context())
	docs, err := a.employees.SearchByPhone(r.Context(), ac, phone)
	if err != nil {
		handleEmployeeError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, map[string]any{"items": docs})
}

func (a *API) updateEmployee(w http.ResponseWriter, r *http.Request, id string) {
	var req updateEmployeeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ac, _ := auth.AccessFromContext(r.Context())
	doc, err := a.employees.Update(r.Context(), ac, id, employee.Update{
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Email:        req.Email,
		Status:       req.Status,
		Name:         req.Name,
		Phone:        req.Phone,
		IDNumber:     req.IDNumber,
		BankAccount:  req.BankAccount,
	})
	if err != nil {
		handleEmployeeError(w, r, err)
		return
	}
	a.respond(w, r, http.StatusOK, doc)
}

func (a *API) deleteEmployee(w http.ResponseWriter, r *http.Request, id string) {
	ac, _ := auth.AccessFromContext(r.Context())
	if err := a.employees.Delete(r.Context(), ac, id); err != nil {
		handleEmployeeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
