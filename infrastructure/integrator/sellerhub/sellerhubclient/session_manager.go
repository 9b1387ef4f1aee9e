package sellerhubclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sync"
	"time"

	"github.com/chaivision/chai-vision-api/internal/config"

	"github.com/sirupsen/logrus"
)

// Sessões são renovadas com esta folga antes de expirarem.
const sessionRenewalMargin = 5 * time.Minute

// SessionManager troca a API key por sessões de curta duração do SellerHub
// e as renova antes de expirar.
type SessionManager struct {
	cfg                 *config.Config
	SessionRefreshMutex sync.Mutex
	httpClient          *http.Client
}

// NewSessionManager cria uma nova instância do gerenciador de sessões
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		cfg:                 cfg,
		SessionRefreshMutex: sync.Mutex{},
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sessionResponse struct {
	SessionToken string `json:"session_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// EnsureValidSession verifica se a sessão atual é válida e renova se necessário
func (sm *SessionManager) EnsureValidSession() error {
	sm.SessionRefreshMutex.Lock()
	defer sm.SessionRefreshMutex.Unlock()

	// Sessão ainda válida e longe da expiração: nada a fazer
	if sm.cfg.SellerHub.SessionToken != "" &&
		time.Until(sm.cfg.SellerHub.SessionExpiresAt) > sessionRenewalMargin {
		return nil
	}

	return sm.refreshSessionInternal()
}

// RefreshSession força a criação de uma nova sessão
func (sm *SessionManager) RefreshSession() error {
	sm.SessionRefreshMutex.Lock()
	defer sm.SessionRefreshMutex.Unlock()

	return sm.refreshSessionInternal()
}

// refreshSessionInternal é a implementação interna da renovação; o chamador
// precisa estar segurando o mutex.
func (sm *SessionManager) refreshSessionInternal() error {
	if sm.cfg.SellerHub.APIKey == "" {
		return fmt.Errorf("API key do SellerHub não configurada")
	}

	logrus.Info("Iniciando renovação da sessão do SellerHub...")

	endpoint, err := url.Parse(sm.cfg.SellerHub.BaseURL)
	if err != nil {
		return fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/auth/sessions")

	payload, err := json.Marshal(map[string]string{"grant_type": "api_key"})
	if err != nil {
		return fmt.Errorf("erro ao montar o corpo da requisição: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("X-Api-Key", sm.cfg.SellerHub.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := sm.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if resp.StatusCode == http.StatusUnauthorized {
			return fmt.Errorf("API key do SellerHub rejeitada - pode ser necessário gerar uma nova chave no painel")
		}
		return fmt.Errorf("requisição de sessão falhou com status: %s, corpo: %s", resp.Status, string(body))
	}

	var session sessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta de sessão: %w", err)
	}

	if session.SessionToken == "" {
		return fmt.Errorf("resposta de sessão sem token")
	}

	sm.cfg.SellerHub.SessionToken = session.SessionToken
	sm.cfg.SellerHub.SessionExpiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)

	logrus.Infof("Sessão do SellerHub renovada com sucesso. Expira em: %s",
		sm.cfg.SellerHub.SessionExpiresAt.Format(time.RFC3339))

	return nil
}
