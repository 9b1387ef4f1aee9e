package handler

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/chaivision/chai-vision-api/infrastructure/repository"
	"github.com/chaivision/chai-vision-api/pkg/apiErrors"
)

// AddNameRequest é o corpo dos cadastros de marca e de canal.
type AddNameRequest struct {
	Name string `json:"name"`
}

// GetRegistry devolve o cadastro de canais e marcas conhecidos, que o
// normalizador usa para validar uploads e o dashboard usa nos filtros.
func GetRegistry(registryRepo repository.RegistryRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registry, err := registryRepo.GetRegistry()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar o cadastro", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(registry); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// AddBrand registra uma nova marca. Nome repetido é ignorado sem erro.
func AddBrand(registryRepo repository.RegistryRepository) http.HandlerFunc {
	return addNameHandler("marca", registryRepo.AddBrand)
}

// AddChannel registra um novo canal. Nome repetido é ignorado sem erro.
func AddChannel(registryRepo repository.RegistryRepository) http.HandlerFunc {
	return addNameHandler("canal", registryRepo.AddChannel)
}

func addNameHandler(kind string, add func(name string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddNameRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome é obrigatório", nil)
			return
		}

		if err := add(name); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar no cadastro", nil)
			return
		}

		logrus.WithFields(logrus.Fields{
			"kind": kind,
			"name": name,
		}).Info("Cadastro atualizado")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"name": name})
	}
}
