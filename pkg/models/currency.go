package models

// Currency is the ISO code an order amount is denominated in.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"

	SAR Currency = "SAR"
	AED Currency = "AED"
	KWD Currency = "KWD"
	QAR Currency = "QAR"
	BHD Currency = "BHD"
	OMR Currency = "OMR"

	EGP Currency = "EGP"
	JOD Currency = "JOD"
	IQD Currency = "IQD"
	YER Currency = "YER"
	LBP Currency = "LBP"
	SYP Currency = "SYP"
	SDG Currency = "SDG"
	LYD Currency = "LYD"
	TND Currency = "TND"
	DZD Currency = "DZD"
	MAD Currency = "MAD"
	MRU Currency = "MRU"
	SOS Currency = "SOS"
	DJF Currency = "DJF"
	KMF Currency = "KMF"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{
	USD, EUR, GBP,
	SAR, AED, KWD, QAR, BHD, OMR,
	EGP, JOD, IQD, YER, LBP, SYP, SDG, LYD, TND, DZD, MAD, MRU, SOS, DJF, KMF,
}

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}
