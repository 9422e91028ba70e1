package network

// EventHandler connects the network layer with the game logic. All three
// methods are called from the hub goroutine, one at a time.
type EventHandler interface {
	// OnConnect é chamado quando um novo cliente se conecta com sucesso.
	OnConnect(c *Client)

	// OnDisconnect é chamado quando um cliente se desconecta. A fila de envio
	// do cliente já está fechada neste ponto.
	OnDisconnect(c *Client)

	// OnMessage é chamado quando uma nova mensagem é recebida de um cliente.
	OnMessage(c *Client, msg Message)
}
