package handler

import (
	"strings"

	"github.com/asaskevich/govalidator"

	"ponto/internal/registration/models"
)

// CadastroPJRequest is the wire payload for POST /api/cadastrarpj. Field
// names follow the Brazilian fiscal vocabulary used by the frontend.
type CadastroPJRequest struct {
	RazaoSocial string `json:"razaoSocial"`
	CNPJ        string `json:"cnpj"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Senha       string `json:"senha"`
	CPF         string `json:"cpf"`
}

// Normalize trims surrounding whitespace from every field except the
// password, which is taken verbatim.
func (r *CadastroPJRequest) Normalize() {
	r.RazaoSocial = strings.TrimSpace(r.RazaoSocial)
	r.CNPJ = strings.TrimSpace(r.CNPJ)
	r.Nome = strings.TrimSpace(r.Nome)
	r.Email = strings.TrimSpace(r.Email)
	r.CPF = strings.TrimSpace(r.CPF)
}

// Validate runs the syntactic checks and returns every failure, not just the
// first, so the client can surface all field problems at once. An empty
// slice means the payload is well-formed.
func (r *CadastroPJRequest) Validate() []string {
	var errs []string

	if !govalidator.StringLength(r.RazaoSocial, "1", "200") {
		errs = append(errs, "razaoSocial is required")
	}
	if !govalidator.IsNumeric(r.CNPJ) || len(r.CNPJ) != 14 {
		errs = append(errs, "cnpj must contain exactly 14 digits")
	}
	if !govalidator.StringLength(r.Nome, "1", "200") {
		errs = append(errs, "nome is required")
	}
	if !govalidator.IsEmail(r.Email) || len(r.Email) > 255 {
		errs = append(errs, "email is invalid")
	}
	// Upper bound matches bcrypt's 72-byte input limit.
	if !govalidator.StringLength(r.Senha, "6", "72") {
		errs = append(errs, "senha must be between 6 and 72 characters")
	}
	if !govalidator.IsNumeric(r.CPF) || len(r.CPF) != 11 {
		errs = append(errs, "cpf must contain exactly 11 digits")
	}

	return errs
}

// ToRegistration maps the wire payload into the transient domain request.
func (r *CadastroPJRequest) ToRegistration() *models.Registration {
	return &models.Registration{
		LegalName:  r.RazaoSocial,
		TaxID:      r.CNPJ,
		Name:       r.Nome,
		Email:      r.Email,
		Password:   r.Senha,
		PersonalID: r.CPF,
	}
}
