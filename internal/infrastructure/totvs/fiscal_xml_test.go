package totvs

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

const nfeSample = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35200871622538000158550010000001231000001234" versao="4.00">
      <ide>
        <nNF>123</nNF>
        <serie>1</serie>
        <dhEmi>2020-08-14T10:30:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>71622538000158</CNPJ>
        <xNome>KDU CONFECCOES LTDA</xNome>
      </emit>
      <dest>
        <xNome>LOJA EXEMPLO EIRELI</xNome>
      </dest>
      <det nItem="1"><prod><cProd>1001</cProd></prod></det>
      <det nItem="2"><prod><cProd>1002</cProd></prod></det>
      <total>
        <ICMSTot>
          <vNF>1234.56</vNF>
        </ICMSTot>
      </total>
    </infNFe>
  </NFe>
</nfeProc>`

func TestSummarizeInvoiceXML(t *testing.T) {
	s, err := SummarizeInvoiceXML(erp.InvoiceXML{AccessKey: "ignorada", Content: nfeSample})
	require.NoError(t, err)

	assert.Equal(t, "35200871622538000158550010000001231000001234", s.AccessKey, "chave extraída do Id do infNFe")
	assert.Equal(t, "123", s.InvoiceNumber)
	assert.Equal(t, "1", s.Serial)
	assert.Equal(t, "2020-08-14T10:30:00-03:00", s.IssueDate)
	assert.Equal(t, "KDU CONFECCOES LTDA", s.EmitterName)
	assert.Equal(t, "71622538000158", s.EmitterCNPJ)
	assert.Equal(t, "LOJA EXEMPLO EIRELI", s.RecipientName)
	assert.Equal(t, 2, s.ItemCount)
	assert.True(t, s.TotalValue.Equal(decimal.NewFromFloat(1234.56)))
}

func TestSummarizeInvoiceXML_SemInfNFe(t *testing.T) {
	_, err := SummarizeInvoiceXML(erp.InvoiceXML{Content: `<root><nada/></root>`})
	require.Error(t, err)
}

func TestSummarizeInvoiceXML_XMLInvalido(t *testing.T) {
	_, err := SummarizeInvoiceXML(erp.InvoiceXML{Content: `<<<`})
	require.Error(t, err)
}
