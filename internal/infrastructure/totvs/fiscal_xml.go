package totvs

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/kdu-dev/painel-api/internal/domain/erp"
)

// SummarizeInvoiceXML extrai do XML de uma NF-e os campos de conferência:
// chave de acesso, número/série, emissão, emitente, destinatário, total e
// quantidade de itens. Aceita tanto o documento processado (nfeProc) quanto a
// NFe crua.
func SummarizeInvoiceXML(xml erp.InvoiceXML) (*erp.InvoiceXMLSummary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml.Content); err != nil {
		return nil, fmt.Errorf("ler XML da NF-e: %w", err)
	}

	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, fmt.Errorf("XML sem elemento infNFe")
	}

	s := &erp.InvoiceXMLSummary{
		AccessKey: xml.AccessKey,
	}
	// O Id do infNFe é "NFe" + chave de acesso de 44 dígitos.
	if id := inf.SelectAttrValue("Id", ""); strings.HasPrefix(id, "NFe") {
		s.AccessKey = strings.TrimPrefix(id, "NFe")
	}

	s.InvoiceNumber = elementText(inf, "ide/nNF")
	s.Serial = elementText(inf, "ide/serie")
	s.IssueDate = elementText(inf, "ide/dhEmi")
	s.EmitterName = elementText(inf, "emit/xNome")
	s.EmitterCNPJ = elementText(inf, "emit/CNPJ")
	s.RecipientName = elementText(inf, "dest/xNome")
	s.ItemCount = len(inf.FindElements("det"))

	if v := elementText(inf, "total/ICMSTot/vNF"); v != "" {
		total, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("valor total inválido na NF-e: %q", v)
		}
		s.TotalValue = total
	}

	return s, nil
}

func elementText(root *etree.Element, path string) string {
	if el := root.FindElement(path); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
