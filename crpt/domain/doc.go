// Package domain define o modelo de dados do documento de introdução em
// circulação, os contratos (Gate, Codec, Transport, StatsStore) e a taxonomia
// de erros do envio ao registro.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar o protocolo de
// envio de detalhes de infraestrutura.
package domain
