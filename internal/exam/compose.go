package exam

import (
	"fmt"
	"strconv"
	"strings"
)

const brandLabel = "11 Plus Exam Papers"

// pageStyles declares the print geometry: A4 pages with zero printer
// margins (the 12mm padding lives on each .page), explicit page breaks
// between the three sections and keep-together hints on questions and
// answer rows.
const pageStyles = `
    @page { size: A4; margin: 0; }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 0; background: #fff; font-family: ui-sans-serif, system-ui, -apple-system, Segoe UI, Roboto, Arial, "Noto Sans", "Liberation Sans", sans-serif; color: #000; }

    .sheet { width: 210mm; min-height: 297mm; margin: 0 auto; }
    .page { width: 210mm; min-height: 297mm; padding: 12mm; }
    .pageBreakAfter { page-break-after: always; }
    .pageBreakBefore { page-break-before: always; }
    .avoid-break-inside { break-inside: avoid; page-break-inside: avoid; }

    /* Cover */
    .coverWrap { min-height: 273mm; display: flex; align-items: center; justify-content: center; }
    .coverCard {
      position: relative;
      width: 100%;
      min-height: 273mm;
      border: 4px double #111;
      border-radius: 8px;
      padding: 18mm 14mm;
      display: flex;
      flex-direction: column;
      align-items: center;
      justify-content: center;
      text-align: center;
    }
    .corner { position:absolute; width: 16mm; height: 16mm; }
    .corner.tl { top: 10mm; left: 10mm; border-top: 2px solid #000; border-left: 2px solid #000; }
    .corner.tr { top: 10mm; right: 10mm; border-top: 2px solid #000; border-right: 2px solid #000; }
    .corner.bl { bottom: 10mm; left: 10mm; border-bottom: 2px solid #000; border-left: 2px solid #000; }
    .corner.br { bottom: 10mm; right: 10mm; border-bottom: 2px solid #000; border-right: 2px solid #000; }

    .brand { font-size: 12px; letter-spacing: 0.25em; text-transform: uppercase; margin-bottom: 8mm; }
    .coverTitle { font-size: 36px; font-weight: 800; margin: 0 0 5mm 0; }
    .divider { width: 24mm; height: 1.5mm; background: #000; margin: 0 0 8mm 0; }
    .coverSubject { font-size: 18px; font-weight: 800; letter-spacing: 0.08em; text-transform: uppercase; margin-bottom: 2mm; }
    .coverSub { font-size: 13px; color: #444; margin-bottom: 10mm; }

    .infoBox { width: 100%; max-width: 110mm; border: 2px solid #000; padding: 6mm; }
    .infoRow { display:flex; justify-content: space-between; font-size: 12px; padding: 2mm 0; border-bottom: 1px solid #bbb; }
    .infoRow:last-child { border-bottom: 0; }

    .instructions { width: 100%; max-width: 130mm; text-align: left; margin-top: 12mm; }
    .instructions h4 { margin: 0 0 2mm 0; font-size: 12px; letter-spacing: 0.12em; text-transform: uppercase; border-bottom: 2px solid #000; padding-bottom: 2mm; }
    .instructions p { margin: 0; font-size: 11px; font-style: italic; line-height: 1.45; color: #111; }
    .instructions .note { margin-top: 2mm; }

    /* Content */
    .section { margin-bottom: 8mm; }
    .passageBox { background: #f3f4f6; border: 1px solid #d1d5db; border-radius: 6px; padding: 6mm; }
    .passageTitle { text-align:center; font-size: 14px; font-weight: 800; letter-spacing: 0.08em; text-transform: uppercase; margin-bottom: 4mm; }
    .passageText { font-family: ui-serif, Georgia, "Times New Roman", Times, serif; font-size: 12px; line-height: 1.65; text-align: justify; }
    .passagePara { margin: 0 0 4mm 0; text-indent: 6mm; }
    .passagePara:last-child { margin-bottom: 0; }

    .question { border-bottom: 1px solid #f1f5f9; padding-bottom: 6mm; margin-bottom: 3mm; }
    .question:last-child { border-bottom: 0; padding-bottom: 0; margin-bottom: 0; }

    .qRow { display:flex; gap: 4mm; }
    .qNum {
      width: 8mm; height: 8mm;
      border-radius: 999px;
      background: #000;
      color: #fff;
      display:flex; align-items:center; justify-content:center;
      font-weight: 800;
      font-size: 10px;
      flex: 0 0 auto;
      margin-top: 1mm;
    }
    .qBody { flex: 1 1 auto; }
    .qText { font-size: 13px; font-weight: 600; margin-bottom: 4mm; }

    .optionsGrid { display: grid; grid-template-columns: 1fr 1fr; column-gap: 10mm; row-gap: 3mm; }
    .option { display:flex; gap: 3mm; align-items:flex-start; }
    .checkbox { width: 6mm; height: 6mm; border: 2px solid #9ca3af; border-radius: 2px; flex: 0 0 auto; margin-top: 0.5mm; }
    .optionText { font-size: 12px; line-height: 1.25; }
    .optLetter { font-weight: 800; color: #6b7280; margin-right: 2mm; }

    .footer { text-align:center; font-size: 9px; color: #9ca3af; padding: 6mm 0 2mm 0; }

    /* answer key */
    .akHeader { text-align:center; border-bottom: 2px solid #000; padding-bottom: 4mm; margin-bottom: 8mm; }
    .akHeader h2 { margin: 0; font-size: 24px; font-weight: 900; }
    .akHeader p { margin: 2mm 0 0 0; font-size: 11px; color: #666; }

    .answerRow { display:grid; grid-template-columns: 10mm 10mm 1fr; gap: 4mm; padding-bottom: 3mm; margin-bottom: 3mm; border-bottom: 1px solid #e5e7eb; }
    .answerRow:last-child { border-bottom: 0; }

    .aNum { font-weight: 900; text-align:center; background:#f3f4f6; border-radius: 4px; height: 8mm; display:flex; align-items:center; justify-content:center; }
    .aLetter { font-weight: 900; text-align:center; background:#000; color:#fff; border-radius: 4px; height: 8mm; display:flex; align-items:center; justify-content:center; }
    .aExpl { font-size: 10.5px; color: #374151; display:flex; align-items:center; line-height: 1.35; }
    .aExplLabel { font-weight: 800; margin-right: 2mm; }

    img { max-width: 100%; }
`

// Compose turns a validated paper into a complete, self-contained HTML
// document: cover page, optional reading passage, numbered questions and a
// final answer-key page. The output is a pure function of the input.
func Compose(p Paper) string {
	var b strings.Builder
	b.Grow(len(pageStyles) + 4096)

	b.WriteString("<!doctype html>\n<html>\n<head>\n  <meta charset=\"utf-8\" />\n  <title>")
	b.WriteString(escapeHTML(p.Title))
	b.WriteString("</title>\n  <style>")
	b.WriteString(pageStyles)
	b.WriteString("  </style>\n</head>\n<body>\n  <div class=\"sheet\">\n")

	writeCoverPage(&b, p)
	writeContentPage(&b, p)
	writeAnswerKeyPage(&b, p.Questions)

	b.WriteString("  </div>\n</body>\n</html>\n")
	return b.String()
}

func writeCoverPage(b *strings.Builder, p Paper) {
	b.WriteString(`    <div class="page pageBreakAfter">
      <div class="coverWrap">
        <div class="coverCard">
          <div class="corner tl"></div><div class="corner tr"></div><div class="corner bl"></div><div class="corner br"></div>
`)
	fmt.Fprintf(b, "          <div class=\"brand\">%s</div>\n", brandLabel)
	fmt.Fprintf(b, "          <h1 class=\"coverTitle\">%s</h1>\n", escapeHTML(p.Title))
	b.WriteString("          <div class=\"divider\"></div>\n")
	fmt.Fprintf(b, "          <div class=\"coverSubject\">%s</div>\n", escapeHTML(p.Subject))
	fmt.Fprintf(b, "          <div class=\"coverSub\">%s Style Assessment</div>\n", escapeHTML(p.Board))
	b.WriteString("          <div class=\"infoBox\">\n")
	fmt.Fprintf(b, "            <div class=\"infoRow\"><span><b>Time Allowed:</b></span><span>%s</span></div>\n", escapeHTML(p.TimeAllowed))
	fmt.Fprintf(b, "            <div class=\"infoRow\"><span><b>Total Questions:</b></span><span>%d</span></div>\n", len(p.Questions))
	b.WriteString("          </div>\n")
	b.WriteString("          <div class=\"instructions\">\n            <h4>Instructions</h4>\n")
	fmt.Fprintf(b, "            <p>%s</p>\n", escapeHTML(p.Instructions))
	b.WriteString("            <p class=\"note\">Do not open this booklet until told to do so.</p>\n")
	b.WriteString("          </div>\n        </div>\n      </div>\n    </div>\n")
}

func writeContentPage(b *strings.Builder, p Paper) {
	b.WriteString("    <div class=\"page\">\n")
	writePassage(b, p.Passage)
	b.WriteString("      <div class=\"section\">\n")
	for i, q := range p.Questions {
		writeQuestion(b, i, q)
	}
	b.WriteString("      </div>\n")
	fmt.Fprintf(b, "      <div class=\"footer\">End of Paper &bull; %s</div>\n", brandLabel)
	b.WriteString("    </div>\n")
}

// writePassage renders the boxed reading passage, if any. The text is split
// on newlines; blank lines become a non-breaking space so vertical spacing
// between paragraphs survives into print.
func writePassage(b *strings.Builder, passage string) {
	if passage == "" {
		return
	}
	b.WriteString(`      <div class="avoid-break-inside section">
        <div class="passageBox">
          <div class="passageTitle">Reading Passage</div>
          <div class="passageText">
`)
	for _, para := range strings.Split(passage, "\n") {
		if strings.TrimSpace(para) == "" {
			b.WriteString("            <p class=\"passagePara\">&nbsp;</p>\n")
			continue
		}
		fmt.Fprintf(b, "            <p class=\"passagePara\">%s</p>\n", escapeHTML(para))
	}
	b.WriteString("          </div>\n        </div>\n      </div>\n")
}

func writeQuestion(b *strings.Builder, idx int, q Question) {
	b.WriteString("        <div class=\"question avoid-break-inside\">\n          <div class=\"qRow\">\n")
	fmt.Fprintf(b, "            <div class=\"qNum\">%d</div>\n", idx+1)
	b.WriteString("            <div class=\"qBody\">\n")
	fmt.Fprintf(b, "              <div class=\"qText\">%s</div>\n", escapeHTML(q.QuestionText))
	b.WriteString("              <div class=\"optionsGrid\">\n")
	for i, opt := range q.Options {
		b.WriteString("                <div class=\"option\">\n                  <div class=\"checkbox\"></div>\n")
		fmt.Fprintf(b, "                  <div class=\"optionText\"><span class=\"optLetter\">%s</span> %s</div>\n",
			optionLetter(i), escapeHTML(opt))
		b.WriteString("                </div>\n")
	}
	b.WriteString("              </div>\n            </div>\n          </div>\n        </div>\n")
}

func writeAnswerKeyPage(b *strings.Builder, questions []Question) {
	b.WriteString(`    <div class="page pageBreakBefore">
      <div class="akHeader">
        <h2>Answer Key</h2>
        <p>Teachers &amp; Parents Use Only</p>
      </div>
`)
	for i, q := range questions {
		explanation := escapeHTML(q.Explanation)
		if explanation == "" {
			explanation = "-"
		}
		b.WriteString("      <div class=\"answerRow avoid-break-inside\">\n")
		fmt.Fprintf(b, "        <div class=\"aNum\">%s</div>\n", strconv.Itoa(i+1))
		fmt.Fprintf(b, "        <div class=\"aLetter\">%s</div>\n", optionLetter(q.CorrectAnswerIndex))
		fmt.Fprintf(b, "        <div class=\"aExpl\"><span class=\"aExplLabel\">Explanation:</span> %s</div>\n", explanation)
		b.WriteString("      </div>\n")
	}
	b.WriteString("    </div>\n")
}
