package cluster

import (
	"fmt"
	"strings"

	consul "github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// NewConsulClient tries each comma separated address in turn and returns a
// client for the first agent that can see a cluster leader.
func NewConsulClient(addrs string, log zerolog.Logger) (*consul.Client, error) {
	nodes := strings.Split(addrs, ",")
	for _, node := range nodes {
		node = strings.TrimSpace(node)
		if node == "" {
			continue
		}
		cfg := consul.DefaultConfig()
		cfg.Address = node

		client, err := consul.NewClient(cfg)
		if err != nil {
			log.Warn().Err(err).Str("addr", node).Msg("could not create consul client")
			continue
		}

		// Teste rápido de saúde
		if _, err := client.Status().Leader(); err != nil {
			log.Warn().Err(err).Str("addr", node).Msg("consul agent has no leader")
			continue
		}

		log.Info().Str("addr", node).Msg("connected to consul")
		return client, nil
	}
	return nil, fmt.Errorf("could not reach any consul agent in %q", addrs)
}
