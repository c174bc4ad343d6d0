// Package contaplus parses the fixed-width Contaplus accounting export
// format into decoded lines ready for aggregation.
package contaplus

import "github.com/contabridge-dev/contabridge/internal/record"

// Field names of the Contaplus entry record. Only a handful drive the
// aggregation; the rest are legacy or Contaplus-internal and are decoded
// for completeness.
const (
	FieldAsien     = "asien"
	FieldFecha     = "fecha"
	FieldSubCta    = "sub_cta"
	FieldContra    = "contra"
	FieldPtaDebe   = "pta_debe"
	FieldConcepto  = "concepto"
	FieldPtaHaber  = "pta_haber"
	FieldFactura   = "factura"
	FieldBaseImpo  = "base_impo"
	FieldIVA       = "iva"
	FieldRecEquiv  = "recequiv"
	FieldDocumento = "documento"
	FieldDeparta   = "departa"
	FieldClave     = "clave"
	FieldEstado    = "estado"
	FieldNCasado   = "n_casado"
	FieldTCasado   = "t_casado"
	FieldTrans     = "trans"
	FieldCambio    = "cambio"
	FieldDebeME    = "debe_me"
	FieldHaberME   = "haber_me"
	FieldAuxiliar  = "auxiliar"
	FieldSerie     = "serie"
	FieldSucursal  = "sucursal"
	FieldCodDivisa = "cod_divisa"
	FieldImpAuxME  = "imp_aux_me"
	FieldMonedaUso = "moneda_uso"
	FieldEuroDebe  = "euro_debe"
	FieldEuroHaber = "euro_haber"
	FieldBaseEuro  = "base_euro"
	FieldNoConv    = "no_conv"
	FieldNumeroInv = "numero_inv"
)

// EntryLayout is the 297-character Contaplus entry record. Offsets are
// 1-based per the published format.
var EntryLayout = record.NewLayout(
	record.Field{Start: 1, Length: 6, Name: FieldAsien, Kind: record.Char},
	record.Field{Start: 7, Length: 8, Name: FieldFecha, Kind: record.Date},
	record.Field{Start: 15, Length: 12, Name: FieldSubCta, Kind: record.Char},
	record.Field{Start: 27, Length: 12, Name: FieldContra, Kind: record.Char},
	record.Field{Start: 39, Length: 16, Name: FieldPtaDebe, Kind: record.Decimal},
	record.Field{Start: 55, Length: 25, Name: FieldConcepto, Kind: record.Char},
	record.Field{Start: 80, Length: 16, Name: FieldPtaHaber, Kind: record.Decimal},
	// factura looks numeric but carries non-numeric values in some
	// exports, so it stays Char.
	record.Field{Start: 96, Length: 8, Name: FieldFactura, Kind: record.Char},
	record.Field{Start: 104, Length: 16, Name: FieldBaseImpo, Kind: record.Decimal},
	record.Field{Start: 120, Length: 5, Name: FieldIVA, Kind: record.Decimal},
	record.Field{Start: 125, Length: 5, Name: FieldRecEquiv, Kind: record.Decimal},
	record.Field{Start: 130, Length: 10, Name: FieldDocumento, Kind: record.Char},
	record.Field{Start: 140, Length: 3, Name: FieldDeparta, Kind: record.Char},
	record.Field{Start: 143, Length: 6, Name: FieldClave, Kind: record.Char},
	record.Field{Start: 149, Length: 1, Name: FieldEstado, Kind: record.Char},
	record.Field{Start: 150, Length: 6, Name: FieldNCasado, Kind: record.Integer},
	record.Field{Start: 156, Length: 1, Name: FieldTCasado, Kind: record.Integer},
	record.Field{Start: 157, Length: 6, Name: FieldTrans, Kind: record.Integer},
	record.Field{Start: 163, Length: 16, Name: FieldCambio, Kind: record.Decimal},
	record.Field{Start: 179, Length: 16, Name: FieldDebeME, Kind: record.Decimal},
	record.Field{Start: 195, Length: 16, Name: FieldHaberME, Kind: record.Decimal},
	record.Field{Start: 211, Length: 1, Name: FieldAuxiliar, Kind: record.Char},
	record.Field{Start: 212, Length: 1, Name: FieldSerie, Kind: record.Char},
	record.Field{Start: 213, Length: 4, Name: FieldSucursal, Kind: record.Char},
	record.Field{Start: 217, Length: 5, Name: FieldCodDivisa, Kind: record.Char},
	record.Field{Start: 222, Length: 16, Name: FieldImpAuxME, Kind: record.Decimal},
	record.Field{Start: 238, Length: 1, Name: FieldMonedaUso, Kind: record.Char},
	record.Field{Start: 239, Length: 16, Name: FieldEuroDebe, Kind: record.Decimal},
	record.Field{Start: 255, Length: 16, Name: FieldEuroHaber, Kind: record.Decimal},
	record.Field{Start: 271, Length: 16, Name: FieldBaseEuro, Kind: record.Decimal},
	record.Field{Start: 287, Length: 1, Name: FieldNoConv, Kind: record.Char},
	record.Field{Start: 288, Length: 10, Name: FieldNumeroInv, Kind: record.Char},
)
