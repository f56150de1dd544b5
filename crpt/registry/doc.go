// Package registry fornece um registro simulado (net/http) que implementa o
// contrato de criação de documentos e a cota de requisições por token.
//
// Visão geral:
//
//   - Handler: POST com Authorization: Bearer, decodifica o envelope e o
//     product_document, valida e responde {"value": uuid} ou {"error_message": ...}
//   - Middleware: cota por chave (token Bearer, header, XFF ou IP) com token
//     bucket; acima da cota responde 429 + Retry-After
//
// Usado pelos testes de ponta a ponta do cliente e pelo binário cmd/registry-stub.
package registry
