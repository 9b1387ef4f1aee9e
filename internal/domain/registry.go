package domain

import "strings"

// Pseudo-seleções usadas pelo dashboard nos filtros de marca e canal.
const (
	AllBrands   = "All Brands"
	AllChannels = "All Channels"
)

// Registry é o conjunto configurado de canais válidos e marcas conhecidas.
// Carregado do banco na subida do serviço e usado pela normalização.
type Registry struct {
	Channels []string `json:"channels"`
	Brands   []string `json:"brands"`
}

// HasChannel verifica se o canal é válido, ignorando caixa.
func (r Registry) HasChannel(name string) bool {
	for _, c := range r.Channels {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

// CanonicalChannel devolve a grafia registrada do canal, preservando a
// caixa configurada mesmo quando o provedor envia tudo minúsculo.
func (r Registry) CanonicalChannel(name string) (string, bool) {
	for _, c := range r.Channels {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

// IsAllBrands detecta a pseudo-seleção "All Brands" do dashboard.
func IsAllBrands(brand string) bool {
	return brand == "" || strings.EqualFold(brand, AllBrands)
}

// IsAllChannels detecta a pseudo-seleção "All Channels" do dashboard.
func IsAllChannels(channel string) bool {
	return channel == "" || strings.EqualFold(channel, AllChannels)
}
