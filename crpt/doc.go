// Package crpt é o cliente de envio de documentos de introdução em circulação
// ao registro, respeitando a cota de N requisições por unidade de tempo.
//
// Visão geral (camadas):
//
//   - domain: modelo do documento, contratos e erros (sem net/http)
//   - application: casos de uso (admissão no gate, protocolo de envio) sem net/http
//   - infra: implementações concretas (gate por gotejamento, codec, HTTPS, estatísticas)
//   - crpt (este pacote): wiring das camadas a partir de Options
//
// Fluxo de CreateDocument:
//
//  1. Adquire uma permissão do gate (único ponto de espera antes da rede)
//  2. Codifica documento e assinatura em base64
//  3. Faz um POST HTTPS e classifica a resposta (value / error_message)
//  4. Devolve a permissão em qualquer saída
package crpt
