// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - DripGate: pool de permissões em channel; as devolvidas voltam uma por tick
//   - SlotPool: semáforo simples de vagas simultâneas
//   - JSONCodec: JSON (json-iterator) + base64
//   - HTTPTransport: POST HTTPS com Authorization: Bearer
//   - Store: token bucket por chave usando golang.org/x/time/rate
//   - MemoryStatsStore / RedisStatsStore: estatísticas de envio
package infra
