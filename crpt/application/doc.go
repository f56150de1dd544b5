// Package application contém os casos de uso do envio de documentos ao registro.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: SubmissionService.Submit(ctx, doc, sig) passa pelo gate, codifica,
// envia pelo Transport e classifica a resposta.
package application
