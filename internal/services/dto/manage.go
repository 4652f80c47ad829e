package dto

import "mime/multipart"

// ManageRequest is a create (ID == 0) or edit submission of the management form.
type ManageRequest struct {
	ID        uint   `form:"id"`
	Name      string `form:"name" validate:"notblank,max=100"`
	Color     string `form:"color" validate:"notblank,is-wine-color"`
	Sugar     string `form:"sugar" validate:"notblank,is-sugar-level"`
	Sparkling string `form:"sparkling" validate:"is-yes-no"`
	Bokal     string `form:"bokal" validate:"is-yes-no"`
	Country   string `form:"country" validate:"notblank,max=100"`
	Region    string `form:"region" validate:"max=100"`
	Grape     string `form:"grape"` // comma separated
	Price     string `form:"price" validate:"max=100"`

	DescriptionFile *multipart.FileHeader `form:"-"`
	BottleImage     *multipart.FileHeader `form:"-"`
}

// ManageResult is what the handler needs to redirect after a save.
type ManageResult struct {
	ID          uint   `json:"id"`
	Created     bool   `json:"created"`
	PdfFile     string `json:"pdf_file"`
	BottleFile  string `json:"bottle_file,omitempty"`
	RedirectURL string `json:"redirect_url"`
}
