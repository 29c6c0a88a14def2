package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"ponto/internal/registration/models"
)

// envelope is the `{data, erros}` wrapper every response on this API uses.
// Erros is always present (an empty array, not null) so clients can iterate
// without nil checks.
type envelope struct {
	Data  *cadastroPJData `json:"data"`
	Erros []string        `json:"erros"`
}

// cadastroPJData echoes the registered fields. Senha is always empty: the
// secret is never returned.
type cadastroPJData struct {
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	Senha       string    `json:"senha"`
	CPF         string    `json:"cpf"`
	CNPJ        string    `json:"cnpj"`
	RazaoSocial string    `json:"razaoSocial"`
	ID          uuid.UUID `json:"id"`
}

func newCadastroPJData(res *models.RegistrationResult) *cadastroPJData {
	return &cadastroPJData{
		Nome:        res.Name,
		Email:       res.Email,
		Senha:       "",
		CPF:         res.PersonalID,
		CNPJ:        res.TaxID,
		RazaoSocial: res.LegalName,
		ID:          res.PersonID,
	}
}

func writeData(w http.ResponseWriter, status int, data *cadastroPJData) {
	writeEnvelope(w, status, envelope{Data: data, Erros: []string{}})
}

func writeErros(w http.ResponseWriter, status int, erros []string) {
	if erros == nil {
		erros = []string{}
	}
	writeEnvelope(w, status, envelope{Data: nil, Erros: erros})
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
