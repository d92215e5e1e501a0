package handler

import (
	"github.com/muller/cepapp/internal/core/domain"
	"github.com/muller/cepapp/internal/core/ports"
)

// addressRequest is the submitted address. Only zip_code is authoritative;
// the postal service overwrites the rest.
type addressRequest struct {
	Street       string `json:"street"       validate:"max=255"`
	Number       string `json:"number"       validate:"max=20"`
	Complement   string `json:"complement"   validate:"max=255"`
	Neighborhood string `json:"neighborhood" validate:"max=255"`
	City         string `json:"city"         validate:"max=255"`
	State        string `json:"state"        validate:"max=2"`
	ZipCode      string `json:"zip_code"`
}

func (r addressRequest) toInput() ports.AddressInput {
	return ports.AddressInput{
		Street:       r.Street,
		Number:       r.Number,
		Complement:   r.Complement,
		Neighborhood: r.Neighborhood,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
	}
}

type addressResponse struct {
	ID           int64  `json:"id"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	OwnerUserID  int64  `json:"owner_user_id"`
}

type listAddressesResponse struct {
	Data       []addressResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

func toAddressResponse(a *domain.Address) addressResponse {
	return addressResponse{
		ID:           a.ID,
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		OwnerUserID:  a.OwnerUserID,
	}
}

func toListAddressesResponse(p ports.Page[*domain.Address]) listAddressesResponse {
	data := make([]addressResponse, 0, len(p.Items))
	for _, a := range p.Items {
		data = append(data, toAddressResponse(a))
	}
	return listAddressesResponse{Data: data, Pagination: toPagination(p)}
}
